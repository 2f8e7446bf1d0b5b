package models

// Page is a CMS content page owned by the upstream admin system. The body
// arrives as trusted markup from the CMS; this service only displays it.
type Page struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Body            string `json:"body"`
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
}

// MenuItem is one node of the site navigation tree.
type MenuItem struct {
	Title    string     `json:"title"`
	Slug     string     `json:"slug"`
	Children []MenuItem `json:"children,omitempty"`
}
