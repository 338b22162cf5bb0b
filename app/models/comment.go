package models

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// OwnedBy reports whether the comment was written by the given viewer.
func (c *Comment) OwnedBy(userID int64) bool {
	return c.User != nil && c.User.ID == userID
}

// AuthorName returns the best available display name for the comment's
// author, falling back to "user" when the server sent none.
func (c *Comment) AuthorName() string {
	if c.User != nil {
		if c.User.Name != "" {
			return c.User.Name
		}
		if c.User.Username != "" {
			return c.User.Username
		}
	}
	if c.Username != "" {
		return c.Username
	}
	return "user"
}
