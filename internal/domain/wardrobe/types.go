package wardrobe

import (
	"strings"
	"time"
)

// Item is a single wardrobe piece.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Colors      []string  `json:"colors"`
	Tags        []string  `json:"tags"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasTag reports whether the item carries tag, ignoring case.
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// CreateItemRequest captures the payload accepted when adding an item.
type CreateItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	Colors      []string `json:"colors" binding:"required"`
	Tags        []string `json:"tags"`
}

// SortField selects the ordering column for listings.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByName      SortField = "name"
	SortByCategory  SortField = "category"
)

// Filter narrows item listings. Tags and Colors match on overlap.
type Filter struct {
	Category  string    `form:"category"`
	Tags      []string  `form:"tags"`
	Colors    []string  `form:"colors"`
	SortBy    SortField `form:"sortBy"`
	SortOrder string    `form:"sortOrder"`
	Limit     int       `form:"limit"`
	Offset    int       `form:"offset"`
}

// Ascending reports whether the listing is sorted ascending.
func (f Filter) Ascending() bool {
	return f.SortOrder == "asc"
}

// ListResult is a page of items plus the unpaged count.
type ListResult struct {
	Items      []Item `json:"items"`
	TotalCount int    `json:"totalCount"`
}

// CategoryCount is a per-category item tally.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TagCount is a per-tag item tally.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// FilterOptions lists the distinct values present in the wardrobe.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	Colors     []string `json:"colors"`
}

// Stats summarizes the wardrobe for dashboards.
type Stats struct {
	TotalItems      int             `json:"totalItems"`
	TotalCategories int             `json:"totalCategories"`
	RecentItems     int             `json:"recentItemsCount"`
	LastAddedAt     *time.Time      `json:"lastAddedDate"`
	Categories      []CategoryCount `json:"categories"`
	Tags            []TagCount      `json:"tags"`
	FilterOptions   FilterOptions   `json:"filterOptions"`
}

// StoredObject describes an uploaded image.
type StoredObject struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}

// Config holds the wardrobe service knobs.
type Config struct {
	MaxColorsPerItem int
	MaxImageBytes    int64
	ImageBaseURL     string
	DefaultPageSize  int
}
