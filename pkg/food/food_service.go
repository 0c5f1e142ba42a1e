package food

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/utils/storage"
	"context"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const foodImageFolder = "food-images"

type (
	FoodService interface {
		ListFood(ctx context.Context, query domain.QuerySpec) (domain.FoodListResult, error)
		GetFood(ctx context.Context, id string) (domain.Document, error)
		CreateFood(ctx context.Context, payload domain.Document) (domain.InsertResult, error)
		UpdateFood(ctx context.Context, id string, payload domain.Document) (domain.UpsertResult, error)
		DeleteFood(ctx context.Context, id string) (domain.DeleteResult, error)
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.UploadFoodImageResponse, error)
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
	}
)

// NewFoodService accepts a nil s3 when image storage is not configured.
func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
	}
}

func (s *foodService) ListFood(ctx context.Context, query domain.QuerySpec) (domain.FoodListResult, error) {
	var (
		items []domain.Document
		err   error
	)

	switch query.Kind {
	case domain.QueryByName:
		items, err = s.foodRepository.FindByName(ctx, query.FoodName)
	case domain.QueryByDonator:
		items, err = s.foodRepository.FindByDonator(ctx, query.DonatorEmail)
	case domain.QueryPaged:
		return s.listPage(ctx, query)
	case domain.QueryAll:
		items, err = s.foodRepository.FindAll(ctx)
	}
	if err != nil {
		return domain.FoodListResult{}, err
	}
	return domain.FoodListResult{Items: items}, nil
}

func (s *foodService) listPage(ctx context.Context, query domain.QuerySpec) (domain.FoodListResult, error) {
	items, err := s.foodRepository.FindPage(ctx, query.Skip(), int64(query.Limit))
	if err != nil {
		return domain.FoodListResult{}, err
	}

	total, err := s.foodRepository.Count(ctx)
	if err != nil {
		return domain.FoodListResult{}, err
	}

	return domain.FoodListResult{
		Items: items,
		Page: &domain.PageInfo{
			TotalItems:  total,
			TotalPages:  domain.TotalPages(total, query.Limit),
			CurrentPage: query.Page,
		},
	}, nil
}

func (s *foodService) GetFood(ctx context.Context, id string) (domain.Document, error) {
	return s.foodRepository.FindByID(ctx, id)
}

func (s *foodService) CreateFood(ctx context.Context, payload domain.Document) (domain.InsertResult, error) {
	id, err := s.foodRepository.Insert(ctx, payload)
	if err != nil {
		return domain.InsertResult{}, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *foodService) UpdateFood(ctx context.Context, id string, payload domain.Document) (domain.UpsertResult, error) {
	res, err := s.foodRepository.Upsert(ctx, id, domain.ListingUpdate(payload))
	if err != nil {
		return domain.UpsertResult{}, err
	}
	if res.Created {
		log.Infof("available food %s did not exist, created by update", res.ID)
	}
	return res, nil
}

func (s *foodService) DeleteFood(ctx context.Context, id string) (domain.DeleteResult, error) {
	deleted, err := s.foodRepository.Delete(ctx, id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	if deleted == nil {
		return domain.DeleteResult{Acknowledged: true}, nil
	}

	s.deleteImage(ctx, deleted)
	return domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// deleteImage removes an uploaded image that only the deleted listing
// referenced. Failures are logged; the listing is already gone.
func (s *foodService) deleteImage(ctx context.Context, deleted domain.Document) {
	if s.s3 == nil {
		return
	}
	link, _ := deleted["foodImage"].(string)
	objectKey := s.s3.GetObjectKeyFromLink(link)
	if objectKey == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warnf("failed to delete food image %s: %v", objectKey, err)
	}
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.UploadFoodImageResponse, error) {
	if s.s3 == nil {
		return domain.UploadFoodImageResponse{}, domain.ErrStorageUnavailable
	}

	objectKey, err := s.s3.UploadFile(ctx, uuid.NewString(), req.Image, foodImageFolder, storage.AllowImage...)
	if err != nil {
		return domain.UploadFoodImageResponse{}, err
	}
	return domain.UploadFoodImageResponse{URL: s.s3.GetPublicLinkKey(objectKey)}, nil
}
