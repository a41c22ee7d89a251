// Package schemas provides the table definitions birdling expects, one file per driver.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.sql
var files embed.FS

// DDL returns the CREATE TABLE statements for driver ("mysql" or "sqlite").
func DDL(driver string) (string, error) {
	b, err := files.ReadFile(driver + ".sql")
	if err != nil {
		return "", fmt.Errorf("files.ReadFile(%s) > %w", driver, err)
	}
	return string(b), nil
}
