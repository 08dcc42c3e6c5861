package openfinance

import "context"

// Category is a node in the transaction category hierarchy.
type Category struct {
	ID                string  `json:"id"`
	Description       string  `json:"description"`
	ParentID          *string `json:"parentId,omitempty"`
	ParentDescription *string `json:"parentDescription,omitempty"`
}

// FetchCategories lists every available category.
func (c *Client) FetchCategories(ctx context.Context) (PageResponse[Category], error) {
	var page PageResponse[Category]
	err := c.api.Get(ctx, "categories", nil, &page)
	return page, err
}

// FetchCategory retrieves a single category by id.
func (c *Client) FetchCategory(ctx context.Context, id string) (Category, error) {
	var category Category
	err := c.api.Get(ctx, "categories/"+id, nil, &category)
	return category, err
}
