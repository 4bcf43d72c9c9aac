package service

import (
	"errors"

	"github.com/HovVathana/shoppink-backend/internal/app/catalog"
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/repository"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound      = errors.New("option group not found")
	ErrOptionNotFound     = errors.New("option not found")
	ErrVariantNotFound    = errors.New("variant not found")
	ErrGroupHasChildren   = errors.New("option group still has child groups")
	ErrOptionInUse        = errors.New("option is referenced by variants")
	ErrDuplicateVariant   = errors.New("a variant with this option combination already exists")
	ErrInvalidParentGroup = errors.New("parent group does not belong to the same product")
	ErrInvalidOptionRef   = errors.New("variant references an option outside the product")
)

// CatalogService is the operator-facing side of the catalog: managing option
// groups, options and variants, and auditing stock allocations.
type CatalogService interface {
	CreateGroup(group *model.OptionGroup) error
	GetGroup(id uint) (*model.OptionGroup, error)
	GetGroupTree(productID uint) ([]model.OptionGroup, error)
	UpdateGroup(group *model.OptionGroup) error
	DeleteGroup(id uint) error

	CreateOption(option *model.Option) error
	UpdateOption(option *model.Option) error
	DeleteOption(id uint) error
	AdjustOptionStock(id uint, delta int) error

	CreateVariant(variant *model.Variant) error
	GetVariantsByProduct(productID uint) ([]model.Variant, error)
	UpdateVariant(variant *model.Variant) error
	DeleteVariant(id uint) error

	AuditAllocations(productID uint) ([]catalog.Violation, error)
}

type catalogService struct {
	groupRepo   repository.OptionGroupRepository
	variantRepo repository.VariantRepository
	productRepo repository.ProductRepository
}

func NewCatalogService(
	groupRepo repository.OptionGroupRepository,
	variantRepo repository.VariantRepository,
	productRepo repository.ProductRepository,
) CatalogService {
	return &catalogService{
		groupRepo:   groupRepo,
		variantRepo: variantRepo,
		productRepo: productRepo,
	}
}

func (s *catalogService) CreateGroup(group *model.OptionGroup) error {
	if _, err := s.productRepo.FindByID(group.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if group.ParentGroupID != nil {
		parent, err := s.groupRepo.FindGroupByID(*group.ParentGroupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}
		if parent.ProductID != group.ProductID {
			return ErrInvalidParentGroup
		}
	}

	if err := s.groupRepo.CreateGroup(group); err != nil {
		return err
	}
	invalidateStockSummary(group.ProductID)

	logger.Info("Option group created", map[string]interface{}{
		"group_id":   group.ID,
		"product_id": group.ProductID,
		"name":       group.Name,
		"is_parent":  group.IsParent,
	})
	return nil
}

func (s *catalogService) GetGroup(id uint) (*model.OptionGroup, error) {
	group, err := s.groupRepo.FindGroupByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *catalogService) GetGroupTree(productID uint) ([]model.OptionGroup, error) {
	groups, err := s.groupRepo.FindGroupsByProductID(productID)
	if err != nil {
		return nil, err
	}
	return catalog.BuildGroupTree(groups), nil
}

func (s *catalogService) UpdateGroup(group *model.OptionGroup) error {
	existing, err := s.groupRepo.FindGroupByID(group.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	group.ProductID = existing.ProductID

	if group.ParentGroupID != nil {
		parent, err := s.groupRepo.FindGroupByID(*group.ParentGroupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}
		if parent.ProductID != group.ProductID {
			return ErrInvalidParentGroup
		}
	}

	if err := s.groupRepo.UpdateGroup(group); err != nil {
		return err
	}
	invalidateStockSummary(group.ProductID)
	return nil
}

// DeleteGroup refuses to remove a parent group while child groups still point
// at it; the children must be deleted or re-parented first.
func (s *catalogService) DeleteGroup(id uint) error {
	group, err := s.groupRepo.FindGroupByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	children, err := s.groupRepo.CountChildGroups(id)
	if err != nil {
		return err
	}
	if children > 0 {
		logger.Warn("Rejected deletion of group with children", map[string]interface{}{
			"group_id":    id,
			"child_count": children,
		})
		return ErrGroupHasChildren
	}

	if err := s.groupRepo.DeleteGroup(id); err != nil {
		return err
	}
	invalidateStockSummary(group.ProductID)

	logger.Info("Option group deleted", map[string]interface{}{
		"group_id":   id,
		"product_id": group.ProductID,
	})
	return nil
}

func (s *catalogService) CreateOption(option *model.Option) error {
	group, err := s.groupRepo.FindGroupByID(option.GroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	// a single-selection group keeps at most one default; the newest wins
	if option.IsDefault && group.SelectionType == model.SelectionSingle {
		if err := s.groupRepo.ClearDefaultOptions(group.ID); err != nil {
			return err
		}
	}

	if err := s.groupRepo.CreateOption(option); err != nil {
		return err
	}
	invalidateStockSummary(group.ProductID)
	return nil
}

func (s *catalogService) UpdateOption(option *model.Option) error {
	existing, err := s.groupRepo.FindOptionByID(option.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionNotFound
		}
		return err
	}
	option.GroupID = existing.GroupID

	group, err := s.groupRepo.FindGroupByID(option.GroupID)
	if err != nil {
		return err
	}
	if option.IsDefault && group.SelectionType == model.SelectionSingle {
		if err := s.groupRepo.ClearDefaultOptions(group.ID); err != nil {
			return err
		}
	}

	if err := s.groupRepo.UpdateOption(option); err != nil {
		return err
	}
	invalidateStockSummary(group.ProductID)
	return nil
}

// DeleteOption refuses to remove an option that variants still reference;
// deleting it would silently orphan those combinations.
func (s *catalogService) DeleteOption(id uint) error {
	option, err := s.groupRepo.FindOptionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionNotFound
		}
		return err
	}

	refs, err := s.groupRepo.CountVariantReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		logger.Warn("Rejected deletion of option referenced by variants", map[string]interface{}{
			"option_id": id,
			"ref_count": refs,
		})
		return ErrOptionInUse
	}

	if err := s.groupRepo.DeleteOption(id); err != nil {
		return err
	}
	if group, err := s.groupRepo.FindGroupByID(option.GroupID); err == nil {
		invalidateStockSummary(group.ProductID)
	}
	return nil
}

func (s *catalogService) AdjustOptionStock(id uint, delta int) error {
	option, err := s.groupRepo.FindOptionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionNotFound
		}
		return err
	}
	if option.StockQuantity+delta < 0 {
		return ErrInsufficientStock
	}

	if err := s.groupRepo.UpdateOptionStock(id, delta); err != nil {
		return err
	}
	if group, err := s.groupRepo.FindGroupByID(option.GroupID); err == nil {
		invalidateStockSummary(group.ProductID)
	}
	return nil
}

// CreateVariant rejects combinations already covered by another variant of
// the same product, and options that don't belong to the product's groups.
func (s *catalogService) CreateVariant(variant *model.Variant) error {
	product, err := s.productRepo.FindDetail(variant.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	known := make(map[uint]bool)
	for _, g := range product.OptionGroups {
		for _, opt := range g.Options {
			known[opt.ID] = true
		}
	}
	for _, vo := range variant.Options {
		if !known[vo.OptionID] {
			logger.Warn("Variant references unknown option", map[string]interface{}{
				"product_id": variant.ProductID,
				"option_id":  vo.OptionID,
			})
			return ErrInvalidOptionRef
		}
	}

	ids := variant.OptionIDs()
	for i := range product.Variants {
		if catalog.SameOptionSet(product.Variants[i].OptionIDs(), ids) {
			logger.Warn("Rejected duplicate variant combination", map[string]interface{}{
				"product_id":  variant.ProductID,
				"existing_id": product.Variants[i].ID,
			})
			return ErrDuplicateVariant
		}
	}

	if err := s.variantRepo.Create(variant); err != nil {
		return err
	}
	invalidateStockSummary(variant.ProductID)

	logger.Info("Variant created", map[string]interface{}{
		"variant_id": variant.ID,
		"product_id": variant.ProductID,
		"options":    ids,
	})
	return nil
}

func (s *catalogService) GetVariantsByProduct(productID uint) ([]model.Variant, error) {
	return s.variantRepo.FindByProductID(productID)
}

func (s *catalogService) UpdateVariant(variant *model.Variant) error {
	existing, err := s.variantRepo.FindByID(variant.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}
	variant.ProductID = existing.ProductID

	if err := s.variantRepo.Update(variant); err != nil {
		return err
	}
	invalidateStockSummary(variant.ProductID)
	return nil
}

func (s *catalogService) DeleteVariant(id uint) error {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}

	if err := s.variantRepo.Delete(id); err != nil {
		return err
	}
	invalidateStockSummary(variant.ProductID)
	return nil
}

// AuditAllocations runs the advisory stock-allocation check for one product.
func (s *catalogService) AuditAllocations(productID uint) ([]catalog.Violation, error) {
	groups, err := s.groupRepo.FindGroupsByProductID(productID)
	if err != nil {
		return nil, err
	}

	violations := catalog.ValidateAllocations(groups)
	for _, v := range violations {
		logger.Warn("Stock allocation violation", map[string]interface{}{
			"product_id": productID,
			"violation":  v.String(),
		})
	}
	return violations, nil
}
