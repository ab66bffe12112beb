package email

// SendWelcomeEmail sends the welcome email to a newly created user. An empty
// name falls back to a generic greeting.
func (c *Client) SendWelcomeEmail(to, name string) error {
	if name == "" {
		name = "there"
	}

	return c.SendEmail(
		to,
		"Welcome to CRUD API!",
		TemplateWelcome,
		map[string]string{"UserName": name},
	)
}
