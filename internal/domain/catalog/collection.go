package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// CollectionType classifies how a collection's membership is determined.
// It is a structural property: the two representations (explicit member
// list vs. rule set) are mutually exclusive and the inactive one is kept
// empty at all times.
type CollectionType string

const (
	CollectionTypeManual CollectionType = "manual"
	CollectionTypeSmart  CollectionType = "smart"
)

// CollectionSortOrder is advisory display-order metadata. It never
// affects resolution, only how downstream consumers present members.
type CollectionSortOrder string

const (
	SortOrderManual      CollectionSortOrder = "manual"
	SortOrderPriceAsc    CollectionSortOrder = "price_asc"
	SortOrderPriceDesc   CollectionSortOrder = "price_desc"
	SortOrderNewest      CollectionSortOrder = "newest"
	SortOrderOldest      CollectionSortOrder = "oldest"
	SortOrderBestSelling CollectionSortOrder = "best_selling"
	SortOrderNameAsc     CollectionSortOrder = "name_asc"
	SortOrderNameDesc    CollectionSortOrder = "name_desc"
	SortOrderFeatured    CollectionSortOrder = "featured"
)

// ProductIDList is an ordered product reference list, persisted as jsonb
type ProductIDList []uuid.UUID

// Value implements driver.Valuer for jsonb storage
func (l ProductIDList) Value() (driver.Value, error) {
	if l == nil {
		l = ProductIDList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for jsonb storage
func (l *ProductIDList) Scan(src any) error {
	if src == nil {
		*l = ProductIDList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into ProductIDList", src)
	}
}

// Contains reports whether the list holds the given product ID
func (l ProductIDList) Contains(id uuid.UUID) bool {
	for _, member := range l {
		if member == id {
			return true
		}
	}
	return false
}

// Collection groups a seller's products either by an explicit ordered
// member list (manual) or by a rule set evaluated against the live
// catalog (smart). It is the aggregate root for collection operations.
//
// Invariant: ManualMembers is non-empty only when Type is manual, and
// Rules is non-empty only when Type is smart. Every mutation path goes
// through methods that re-establish this invariant.
type Collection struct {
	shared.SellerAggregateRoot
	Name          string              `gorm:"type:varchar(200);not null"`
	Slug          string              `gorm:"type:varchar(220);not null;index"`
	Description   string              `gorm:"type:text"`
	Type          CollectionType      `gorm:"type:varchar(10);not null"`
	ManualMembers ProductIDList       `gorm:"type:jsonb;not null;default:'[]'"`
	Rules         ConditionList       `gorm:"type:jsonb;not null;default:'[]'"`
	SortOrder     CollectionSortOrder `gorm:"type:varchar(20);not null;default:'manual'"`

	// Visibility and lifecycle flags; descriptive metadata only, except
	// IsDraft which drives the publish gate.
	ShowOnStorefront bool `gorm:"not null;default:true"`
	ShowOnMobile     bool `gorm:"not null;default:true"`
	IsActive         bool `gorm:"not null;default:true"`
	IsFeatured       bool `gorm:"not null;default:false"`
	IsDraft          bool `gorm:"not null;default:true"`
	IsTrending       bool `gorm:"not null;default:false"`
	IsSeasonal       bool `gorm:"not null;default:false"`
	IsSale           bool `gorm:"not null;default:false"`

	SEOTitle       string `gorm:"type:varchar(200)"`
	SEODescription string `gorm:"type:varchar(500)"`

	HomepagePlacement bool `gorm:"not null;default:false"`
	PlacementPriority int  `gorm:"not null;default:0"`

	PublishedAt        *time.Time
	ScheduledPublishAt *time.Time
}

// TableName returns the table name for GORM
func (Collection) TableName() string {
	return "collections"
}

// NewCollection creates a new collection in draft state. Name and type
// are required; the slug is derived from the name when not supplied later.
func NewCollection(sellerID uuid.UUID, name string, collectionType CollectionType) (*Collection, error) {
	if err := validateCollectionName(name); err != nil {
		return nil, err
	}
	if err := validateCollectionType(collectionType); err != nil {
		return nil, err
	}

	collection := &Collection{
		SellerAggregateRoot: shared.NewSellerAggregateRoot(sellerID),
		Name:                name,
		Slug:                Slugify(name),
		Type:                collectionType,
		ManualMembers:       ProductIDList{},
		Rules:               ConditionList{},
		SortOrder:           SortOrderManual,
		ShowOnStorefront:    true,
		ShowOnMobile:        true,
		IsActive:            true,
		IsDraft:             true,
	}

	collection.AddDomainEvent(NewCollectionCreatedEvent(collection))

	return collection, nil
}

// IsManual reports whether membership is an explicit ordered list
func (c *Collection) IsManual() bool {
	return c.Type == CollectionTypeManual
}

// IsSmart reports whether membership is computed from rules
func (c *Collection) IsSmart() bool {
	return c.Type == CollectionTypeSmart
}

// Rename updates the collection name and, when the slug was derived from
// the old name, re-derives it.
func (c *Collection) Rename(name string) error {
	if err := validateCollectionName(name); err != nil {
		return err
	}

	if c.Slug == Slugify(c.Name) {
		c.Slug = Slugify(name)
	}
	c.Name = name
	c.touch()

	c.AddDomainEvent(NewCollectionUpdatedEvent(c))

	return nil
}

// SetSlug overrides the derived slug
func (c *Collection) SetSlug(slug string) {
	if slug == "" {
		slug = Slugify(c.Name)
	}
	c.Slug = slug
	c.touch()
}

// SetDescription updates the description
func (c *Collection) SetDescription(description string) {
	c.Description = description
	c.touch()
}

// SetSortOrder sets the advisory display order
func (c *Collection) SetSortOrder(order CollectionSortOrder) error {
	if !isValidSortOrder(order) {
		return shared.NewValidationError("Unknown sort order: " + string(order))
	}
	c.SortOrder = order
	c.touch()
	return nil
}

// SetType re-declares the collection type. Re-declaring always resets
// the representation that the new type does not use, even when the type
// itself is unchanged.
func (c *Collection) SetType(collectionType CollectionType) error {
	if err := validateCollectionType(collectionType); err != nil {
		return err
	}

	c.Type = collectionType
	c.enforceTypeInvariant()
	c.touch()

	return nil
}

// SetManualMembers replaces the member list of a manual collection
func (c *Collection) SetManualMembers(members []uuid.UUID) error {
	if !c.IsManual() {
		return shared.NewTypeMismatchError("Manual members can only be set on a manual collection")
	}

	c.ManualMembers = dedupeMembers(members)
	c.enforceTypeInvariant()
	c.touch()

	c.AddDomainEvent(NewCollectionMembersChangedEvent(c))

	return nil
}

// SetRules replaces the rule set of a smart collection
func (c *Collection) SetRules(rules []Condition) error {
	if !c.IsSmart() {
		return shared.NewTypeMismatchError("Rules can only be set on a smart collection")
	}

	if rules == nil {
		rules = []Condition{}
	}
	c.Rules = ConditionList(rules)
	c.enforceTypeInvariant()
	c.touch()

	c.AddDomainEvent(NewCollectionUpdatedEvent(c))

	return nil
}

// AddMember appends a product to a manual collection's member list.
// Adding an existing member is a silent no-op; added reports whether
// the list actually changed.
func (c *Collection) AddMember(productID uuid.UUID) (added bool, err error) {
	if !c.IsManual() {
		return false, shared.NewTypeMismatchError("Products can only be added to a manual collection")
	}

	if c.ManualMembers.Contains(productID) {
		return false, nil
	}

	c.ManualMembers = append(c.ManualMembers, productID)
	c.touch()

	c.AddDomainEvent(NewCollectionMembersChangedEvent(c))

	return true, nil
}

// RemoveMember removes a product from a manual collection's member list.
// Removing an absent member is a silent no-op; removed reports whether
// the list actually changed.
func (c *Collection) RemoveMember(productID uuid.UUID) (removed bool, err error) {
	if !c.IsManual() {
		return false, shared.NewTypeMismatchError("Products can only be removed from a manual collection")
	}

	filtered := make(ProductIDList, 0, len(c.ManualMembers))
	for _, member := range c.ManualMembers {
		if member == productID {
			removed = true
			continue
		}
		filtered = append(filtered, member)
	}

	if removed {
		c.ManualMembers = filtered
		c.touch()
		c.AddDomainEvent(NewCollectionMembersChangedEvent(c))
	}

	return removed, nil
}

// ReorderMembers replaces the member ordering of a manual collection.
// The supplied list must be a permutation of the current membership:
// reordering affects display sequence only and cannot add or drop
// members.
func (c *Collection) ReorderMembers(ordered []uuid.UUID) error {
	if !c.IsManual() {
		return shared.NewTypeMismatchError("Only a manual collection can be reordered")
	}

	if !isPermutation(c.ManualMembers, ordered) {
		return shared.NewValidationError("Reordered list must contain exactly the current members")
	}

	c.ManualMembers = ProductIDList(ordered)
	c.touch()

	c.AddDomainEvent(NewCollectionMembersChangedEvent(c))

	return nil
}

// Publish transitions the collection out of draft state. The gate
// requires a minimally valid configuration: at least one member for a
// manual collection, at least one rule for a smart one. The smart gate
// checks rule-list non-emptiness only; a rule set that resolves to zero
// live products still publishes.
//
// Re-publishing an already published collection re-runs the gate.
func (c *Collection) Publish() error {
	if c.IsManual() && len(c.ManualMembers) == 0 {
		return shared.NewValidationError("Cannot publish a manual collection with no products")
	}
	if c.IsSmart() && len(c.Rules) == 0 {
		return shared.NewValidationError("Cannot publish a smart collection with no rules")
	}

	wasDraft := c.IsDraft
	c.IsDraft = false
	if c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}
	c.touch()

	if wasDraft {
		c.AddDomainEvent(NewCollectionPublishedEvent(c))
	}

	return nil
}

// Unpublish returns the collection to draft state. The reverse
// transition is never guarded.
func (c *Collection) Unpublish() {
	if !c.IsDraft {
		c.IsDraft = true
		c.touch()
		c.AddDomainEvent(NewCollectionUnpublishedEvent(c))
	}
}

// enforceTypeInvariant forces the representation not used by the current
// type to empty
func (c *Collection) enforceTypeInvariant() {
	if c.IsManual() {
		c.Rules = ConditionList{}
	} else {
		c.ManualMembers = ProductIDList{}
	}
}

func (c *Collection) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// dedupeMembers drops duplicate IDs while preserving first-seen order
func dedupeMembers(members []uuid.UUID) ProductIDList {
	seen := make(map[uuid.UUID]struct{}, len(members))
	result := make(ProductIDList, 0, len(members))
	for _, id := range members {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// isPermutation reports whether b contains exactly the elements of a
func isPermutation(a ProductIDList, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[uuid.UUID]int, len(a))
	for _, id := range a {
		counts[id]++
	}
	for _, id := range b {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}

// validateCollectionName validates the collection name
func validateCollectionName(name string) error {
	if name == "" {
		return shared.NewValidationError("Collection name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Collection name cannot exceed 200 characters")
	}
	return nil
}

// validateCollectionType validates the collection type
func validateCollectionType(t CollectionType) error {
	if t != CollectionTypeManual && t != CollectionTypeSmart {
		return shared.NewValidationError("Collection type must be manual or smart")
	}
	return nil
}

func isValidSortOrder(order CollectionSortOrder) bool {
	switch order {
	case SortOrderManual, SortOrderPriceAsc, SortOrderPriceDesc,
		SortOrderNewest, SortOrderOldest, SortOrderBestSelling,
		SortOrderNameAsc, SortOrderNameDesc, SortOrderFeatured:
		return true
	}
	return false
}
