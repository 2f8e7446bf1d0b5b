package schoolapi

import (
	"context"
	"net/url"

	"motoschool/models"
)

// Page fetches one CMS page by slug. A missing page surfaces as ErrNotFound
// so the handler can render the not-found view.
func (c *DefaultClient) Page(ctx context.Context, slug string) (*models.Page, error) {
	var page models.Page
	if err := c.getJSON(ctx, "/pages/"+url.PathEscape(slug), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Menu fetches the site navigation tree.
func (c *DefaultClient) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var menu []models.MenuItem
	if err := c.getJSON(ctx, "/menu", nil, &menu); err != nil {
		return nil, err
	}
	return menu, nil
}
