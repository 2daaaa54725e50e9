package email

import "fmt"

// AccountOpened describes a newly opened account.
type AccountOpened struct {
	AccountID   string
	AccountType string
	OwnerID     string
	OwnerName   string
	DateCreated string
}

// SendAccountOpenedEmail tells the operations mailbox that an account was
// opened.
func (c *Client) SendAccountOpenedEmail(to string, a AccountOpened) error {
	data := map[string]string{
		"AccountID":   a.AccountID,
		"AccountType": a.AccountType,
		"OwnerID":     a.OwnerID,
		"OwnerName":   a.OwnerName,
		"DateCreated": a.DateCreated,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("New %s account for %s", a.AccountType, a.OwnerName),
		TemplateAccountOpened,
		data,
	)
}
