package database

import (
	"database/sql"
	"fmt"
)

// GetUserForAuth returns the stored credentials row used by the JWT
// service. Passwords are stored as SHA-256 hex digests.
func (c *Connection) GetUserForAuth(email string) (name, passphrase string, isAdmin bool, err error) {
	query := `
        SELECT COALESCE(name, ''), passphrase, is_admin
        FROM users
        WHERE email = ?
    `
	err = c.db.QueryRow(query, email).Scan(&name, &passphrase, &isAdmin)
	return name, passphrase, isAdmin, err
}

// HasUsedRegistrationDiscount reports whether the customer already burned
// their one-time first-order discount. Unknown emails count as used so the
// discount is only ever granted to a registered account.
func (c *Connection) HasUsedRegistrationDiscount(email string) (bool, error) {
	var used bool
	query := `SELECT registration_discount_used FROM users WHERE email = ?`

	err := c.db.QueryRow(query, email).Scan(&used)
	if err != nil {
		if err == sql.ErrNoRows {
			return true, nil
		}
		return true, fmt.Errorf("error checking registration discount: %v", err)
	}
	return used, nil
}
