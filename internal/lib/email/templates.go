package email

// Template names an HTML file under templates/, without extension.
type Template string

const (
	TemplateAccountOpened Template = "account_opened"
)
