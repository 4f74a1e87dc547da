package catalog

import (
	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Event types for collection aggregates
const (
	EventTypeCollectionCreated        = "catalog.collection.created"
	EventTypeCollectionUpdated        = "catalog.collection.updated"
	EventTypeCollectionMembersChanged = "catalog.collection.members_changed"
	EventTypeCollectionPublished      = "catalog.collection.published"
	EventTypeCollectionUnpublished    = "catalog.collection.unpublished"
	EventTypeCollectionDeleted        = "catalog.collection.deleted"
)

// AggregateTypeCollection is the aggregate type name for collections
const AggregateTypeCollection = "Collection"

// CollectionCreatedEvent is raised when a collection is created
type CollectionCreatedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID      `json:"collection_id"`
	Name         string         `json:"name"`
	Type         CollectionType `json:"type"`
}

// NewCollectionCreatedEvent creates a new CollectionCreatedEvent
func NewCollectionCreatedEvent(c *Collection) *CollectionCreatedEvent {
	return &CollectionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionCreated, AggregateTypeCollection, c.ID, c.SellerID),
		CollectionID:    c.ID,
		Name:            c.Name,
		Type:            c.Type,
	}
}

// CollectionUpdatedEvent is raised when a collection's attributes or rules change
type CollectionUpdatedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID      `json:"collection_id"`
	Name         string         `json:"name"`
	Type         CollectionType `json:"type"`
}

// NewCollectionUpdatedEvent creates a new CollectionUpdatedEvent
func NewCollectionUpdatedEvent(c *Collection) *CollectionUpdatedEvent {
	return &CollectionUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionUpdated, AggregateTypeCollection, c.ID, c.SellerID),
		CollectionID:    c.ID,
		Name:            c.Name,
		Type:            c.Type,
	}
}

// CollectionMembersChangedEvent is raised when a manual collection's
// member list changes
type CollectionMembersChangedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID `json:"collection_id"`
	MemberCount  int       `json:"member_count"`
}

// NewCollectionMembersChangedEvent creates a new CollectionMembersChangedEvent
func NewCollectionMembersChangedEvent(c *Collection) *CollectionMembersChangedEvent {
	return &CollectionMembersChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionMembersChanged, AggregateTypeCollection, c.ID, c.SellerID),
		CollectionID:    c.ID,
		MemberCount:     len(c.ManualMembers),
	}
}

// CollectionPublishedEvent is raised when a draft collection is published
type CollectionPublishedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID `json:"collection_id"`
	Name         string    `json:"name"`
}

// NewCollectionPublishedEvent creates a new CollectionPublishedEvent
func NewCollectionPublishedEvent(c *Collection) *CollectionPublishedEvent {
	return &CollectionPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionPublished, AggregateTypeCollection, c.ID, c.SellerID),
		CollectionID:    c.ID,
		Name:            c.Name,
	}
}

// CollectionUnpublishedEvent is raised when a collection returns to draft
type CollectionUnpublishedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID `json:"collection_id"`
	Name         string    `json:"name"`
}

// NewCollectionUnpublishedEvent creates a new CollectionUnpublishedEvent
func NewCollectionUnpublishedEvent(c *Collection) *CollectionUnpublishedEvent {
	return &CollectionUnpublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionUnpublished, AggregateTypeCollection, c.ID, c.SellerID),
		CollectionID:    c.ID,
		Name:            c.Name,
	}
}

// CollectionDeletedEvent is raised when a collection is deleted
type CollectionDeletedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID `json:"collection_id"`
	Name         string    `json:"name"`
}

// NewCollectionDeletedEvent creates a new CollectionDeletedEvent
func NewCollectionDeletedEvent(c *Collection) *CollectionDeletedEvent {
	return &CollectionDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionDeleted, AggregateTypeCollection, c.ID, c.SellerID),
		CollectionID:    c.ID,
		Name:            c.Name,
	}
}
