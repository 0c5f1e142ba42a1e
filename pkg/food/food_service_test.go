package food

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/storetest"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeS3 struct {
	uploaded []string
	deleted  []string
	failDel  bool
}

const fakeS3Prefix = "https://bucket.s3.test/"

func (f *fakeS3) UploadFile(_ context.Context, fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	key := folder + "/" + fileName
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeS3) DeleteFile(_ context.Context, objectKey string) error {
	if f.failDel {
		return errors.New("boom")
	}
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string { return fakeS3Prefix + objectKey }

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, fakeS3Prefix) {
		return ""
	}
	return strings.TrimPrefix(link, fakeS3Prefix)
}

func newTestService(t *testing.T) (FoodService, *storetest.FoodRepository, *fakeS3) {
	t.Helper()
	repo := storetest.NewFoodRepository()
	s3 := &fakeS3{}
	return NewFoodService(repo, s3), repo, s3
}

func TestCreateThenGetReturnsAllFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	payload := domain.Document{"foodName": "Rice", "quantity": "5kg", "donatorEmail": "a@x.com", "extra": 3.0}
	res, err := svc.CreateFood(ctx, payload)
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.NotEmpty(t, res.InsertedID)

	doc, err := svc.GetFood(ctx, res.InsertedID)
	require.NoError(t, err)
	for k, v := range payload {
		assert.Equal(t, v, doc[k], k)
	}
	assert.Equal(t, res.InsertedID, doc["_id"])
}

func TestGetFoodMissingAndMalformed(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.GetFood(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Nil(t, doc)

	calls := repo.Calls
	_, err = svc.GetFood(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.Equal(t, calls, repo.Calls)
}

func TestUpdateFoodReplacesFixedFieldsOnly(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateFood(ctx, domain.Document{"foodName": "Rice", "notes": "old", "donatorEmail": "a@x.com"})
	require.NoError(t, err)

	res, err := svc.UpdateFood(ctx, created.InsertedID, domain.Document{
		"foodName":     "Brown rice",
		"status":       "requested",
		"donatorEmail": "evil@x.com",
	})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, int64(1), res.Matched)
	assert.Equal(t, int64(1), res.Modified)

	doc, err := svc.GetFood(ctx, created.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "Brown rice", doc["foodName"])
	assert.Equal(t, "requested", doc["status"])
	assert.Nil(t, doc["notes"])
	assert.Equal(t, "a@x.com", doc["donatorEmail"])
}

func TestUpdateFoodCreatesWhenAbsent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	res, err := svc.UpdateFood(ctx, id, domain.Document{"foodName": "Bread"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, id, res.ID)

	doc, err := svc.GetFood(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bread", doc["foodName"])

	again, err := svc.UpdateFood(ctx, id, domain.Document{"foodName": "Bread"})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, int64(0), again.Modified)
}

func TestDeleteFood(t *testing.T) {
	svc, _, s3 := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateFood(ctx, domain.Document{"foodName": "Rice", "foodImage": fakeS3Prefix + "food-images/x.png"})
	require.NoError(t, err)

	res, err := svc.DeleteFood(ctx, created.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)
	assert.Equal(t, []string{"food-images/x.png"}, s3.deleted)

	doc, err := svc.GetFood(ctx, created.InsertedID)
	require.NoError(t, err)
	assert.Nil(t, doc)

	res, err = svc.DeleteFood(ctx, created.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DeletedCount)
}

func TestDeleteFoodKeepsForeignImages(t *testing.T) {
	svc, _, s3 := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateFood(ctx, domain.Document{"foodImage": "https://i.ibb.co/x.png"})
	require.NoError(t, err)

	_, err = svc.DeleteFood(ctx, created.InsertedID)
	require.NoError(t, err)
	assert.Empty(t, s3.deleted)
}

func TestListFoodDispatch(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, doc := range []domain.Document{
		{"foodName": "Fried Rice", "donatorEmail": "a@x.com"},
		{"foodName": "Bread", "donatorEmail": "b@x.com"},
		{"foodName": "RICE cake", "donatorEmail": "b@x.com"},
	} {
		_, err := svc.CreateFood(ctx, doc)
		require.NoError(t, err)
	}

	byName, err := svc.ListFood(ctx, domain.NewQuerySpec("ric", "", "", ""))
	require.NoError(t, err)
	assert.Len(t, byName.Items, 2)
	assert.Nil(t, byName.Page)

	byDonator, err := svc.ListFood(ctx, domain.NewQuerySpec("", "b@x.com", "", ""))
	require.NoError(t, err)
	assert.Len(t, byDonator.Items, 2)

	all, err := svc.ListFood(ctx, domain.NewQuerySpec("", "", "", ""))
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)

	none, err := svc.ListFood(ctx, domain.NewQuerySpec("pizza", "", "", ""))
	require.NoError(t, err)
	assert.NotNil(t, none.Items)
	assert.Empty(t, none.Items)
}

func TestListFoodPagination(t *testing.T) {
	for _, n := range []int{0, 5, 10, 15, 20, 23} {
		t.Run(fmt.Sprintf("%d listings", n), func(t *testing.T) {
			svc, _, _ := newTestService(t)
			ctx := context.Background()
			for i := 0; i < n; i++ {
				_, err := svc.CreateFood(ctx, domain.Document{"foodName": fmt.Sprintf("food %d", i)})
				require.NoError(t, err)
			}

			res, err := svc.ListFood(ctx, domain.NewQuerySpec("", "", "2", "10"))
			require.NoError(t, err)
			require.NotNil(t, res.Page)

			want := min(10, max(0, n-10))
			assert.Len(t, res.Items, want)
			assert.Equal(t, int64(n), res.Page.TotalItems)
			assert.Equal(t, int64((n+9)/10), res.Page.TotalPages)
			assert.Equal(t, 2, res.Page.CurrentPage)
		})
	}
}

func TestListFoodPaginationHugeLimit(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 23; i++ {
		_, err := svc.CreateFood(ctx, domain.Document{"foodName": fmt.Sprintf("food %d", i)})
		require.NoError(t, err)
	}

	first, err := svc.ListFood(ctx, domain.NewQuerySpec("", "", "1", "9223372036854775807"))
	require.NoError(t, err)
	assert.Len(t, first.Items, 23)
	assert.Equal(t, int64(1), first.Page.TotalPages)

	third, err := svc.ListFood(ctx, domain.NewQuerySpec("", "", "3", "9223372036854775807"))
	require.NoError(t, err)
	assert.Empty(t, third.Items)
	assert.Equal(t, int64(1), third.Page.TotalPages)
	assert.Equal(t, 3, third.Page.CurrentPage)
}

func TestListFoodStoreFailure(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.Fail = true

	_, err := svc.ListFood(context.Background(), domain.NewQuerySpec("", "", "", ""))
	assert.ErrorIs(t, err, storetest.ErrStoreDown)
}

func TestUploadFoodImage(t *testing.T) {
	svc, _, s3 := newTestService(t)

	res, err := svc.UploadFoodImage(context.Background(), domain.UploadFoodImageRequest{Image: &multipart.FileHeader{Filename: "a.png"}})
	require.NoError(t, err)
	require.Len(t, s3.uploaded, 1)
	assert.Equal(t, fakeS3Prefix+s3.uploaded[0], res.URL)
	assert.True(t, strings.HasPrefix(s3.uploaded[0], foodImageFolder+"/"))

	noStorage := NewFoodService(storetest.NewFoodRepository(), nil)
	_, err = noStorage.UploadFoodImage(context.Background(), domain.UploadFoodImageRequest{})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
