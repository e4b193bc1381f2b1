package service

import (
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"adelanta/internal/contract"
	"adelanta/internal/domain/entity"
	"adelanta/internal/infrastructure/aws/storage"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

type BenefitRepository interface {
	FindVisibleTo(companyID int64) ([]*entity.Benefit, error)
	FindByID(id int64) (*entity.Benefit, error)
	Save(benefit *entity.Benefit) error
	Delete(benefit *entity.Benefit) error
}

type BenefitService struct {
	BenefitRepo BenefitRepository
	S3          storage.S3Client
	Validate    *validator.Validate
}

func NewBenefitService(benefitRepo BenefitRepository, s3 storage.S3Client, validate *validator.Validate) *BenefitService {
	return &BenefitService{
		BenefitRepo: benefitRepo,
		S3:          s3,
		Validate:    validate,
	}
}

// GetBenefits lists the benefits the actor's company can see: its own
// plus the platform-wide ones.
func (s *BenefitService) GetBenefits(actor *entity.Employee) ([]*contract.BenefitResponse, apierror.ErrorResponse) {
	benefits, err := s.BenefitRepo.FindVisibleTo(actor.CompanyID)
	if err != nil {
		log.Errorf("failed to fetch benefits: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.BenefitResponse, len(benefits))
	for i, benefit := range benefits {
		resp[i] = toBenefitResponse(benefit)
	}
	return resp, nil
}

func (s *BenefitService) CreateBenefit(actor *entity.Employee, req *contract.BenefitRequest, imageHeader *multipart.FileHeader) (*contract.BenefitResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageBenefits) {
		return nil, apierror.MissingPermsError
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	var imageKey string
	if imageHeader != nil {
		key, apierr := s.uploadBenefitImage(imageHeader)
		if apierr != nil {
			return nil, apierr
		}
		imageKey = key
	}

	now := utils.NowUTC()
	benefit := &entity.Benefit{
		CompanyID:   req.CompanyID,
		Name:        req.Name,
		Description: req.Description,
		ImageKey:    imageKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.BenefitRepo.Save(benefit); err != nil {
		log.Errorf("failed to save benefit: %v", err)
		return nil, apierror.InternalServerError
	}
	return toBenefitResponse(benefit), nil
}

func (s *BenefitService) UpdateBenefit(actor *entity.Employee, id int64, req *contract.UpdateBenefitRequest) (*contract.BenefitResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageBenefits) {
		return nil, apierror.MissingPermsError
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	benefit, err := s.BenefitRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch benefit %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if benefit == nil {
		return nil, apierror.NotFoundError
	}

	if req.Name != nil {
		benefit.Name = *req.Name
	}
	if req.Description != nil {
		benefit.Description = *req.Description
	}

	benefit.UpdatedAt = utils.NowUTC()
	if err := s.BenefitRepo.Save(benefit); err != nil {
		log.Errorf("failed to update benefit %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toBenefitResponse(benefit), nil
}

func (s *BenefitService) DeleteBenefit(actor *entity.Employee, id int64) apierror.ErrorResponse {
	if !actor.Permissions.HasEffective(entity.PermissionManageBenefits) {
		return apierror.MissingPermsError
	}

	benefit, err := s.BenefitRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch benefit %d: %v", id, err)
		return apierror.InternalServerError
	}
	if benefit == nil {
		return apierror.NotFoundError
	}

	if err := s.deleteBenefitImage(benefit); err != nil {
		log.Errorf("failed to delete benefit image: %v", err)
		return apierror.InternalServerError
	}

	if err := s.BenefitRepo.Delete(benefit); err != nil {
		log.Errorf("failed to delete benefit %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

// uploadBenefitImage checks the file and stores it under a fresh UUID
// name, returning the object key.
func (s *BenefitService) uploadBenefitImage(header *multipart.FileHeader) (string, apierror.ErrorResponse) {
	if header.Size > contract.MaxBenefitImageBytes {
		return "", apierror.NewFileTooLargeError(contract.MaxBenefitImageBytes)
	}

	if strings.TrimSpace(header.Filename) == "" {
		return "", apierror.MissingImageFileError
	}

	ext, ok := utils.CheckFileExt(header.Filename, contract.ValidBenefitImageTypes)
	if !ok {
		return "", apierror.NewInvalidFileExtError(ext)
	}

	file, err := header.Open()
	if err != nil {
		log.Errorf("failed to open image: %v", err)
		return "", apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read image: %v", err)
		return "", apierror.InternalServerError
	}

	key := storage.PathBenefits + uuid.NewString() + filepath.Ext(header.Filename)
	if _, err := s.S3.UploadFile(data, key); err != nil {
		log.Errorf("failed to upload image: %v", err)
		return "", apierror.InternalServerError
	}
	return key, nil
}

// deleteBenefitImage removes the stored image from S3.
//
// It is idempotent: it returns nil if the object does not exist.
// This prevents errors when the database and S3 bucket are out of sync.
func (s *BenefitService) deleteBenefitImage(benefit *entity.Benefit) error {
	if benefit.ImageKey == "" {
		return nil
	}

	err := s.S3.DeleteFile(benefit.ImageKey)

	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil
	}
	return err
}

func toBenefitResponse(benefit *entity.Benefit) *contract.BenefitResponse {
	return &contract.BenefitResponse{
		ID:          benefit.ID,
		CompanyID:   benefit.CompanyID,
		Name:        benefit.Name,
		Description: benefit.Description,
		ImageKey:    benefit.ImageKey,
		CreatedAt:   utils.FormatEpoch(benefit.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(benefit.UpdatedAt),
	}
}
