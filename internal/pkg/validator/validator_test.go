package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty("  x  "))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, IsValidEmail("userexample.com"))
	assert.False(t, IsValidEmail("user@"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("user@example"))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0190cdb3-4aef-7cc1-9ab8-7a2f6e5d4c3b"))
	// v4 is rejected, only v7 ids are issued
	assert.False(t, IsValidUUID("123e4567-e89b-42d3-a456-426614174000"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2026-01-31")
	assert.True(t, ok)
	_, ok = IsValidDate("31-01-2026")
	assert.False(t, ok)
	_, ok = IsValidDate("2026-02-30")
	assert.False(t, ok)
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("+221 77 123 45 67"))
	assert.True(t, IsValidPhoneNumber("0612345678"))
	assert.False(t, IsValidPhoneNumber("12345"))
	assert.False(t, IsValidPhoneNumber("not-a-number"))
}

func TestIsValidPermissionName(t *testing.T) {
	assert.True(t, IsValidPermissionName("quotes.approve_dg"))
	assert.True(t, IsValidPermissionName("customers.read"))
	assert.False(t, IsValidPermissionName("quotes"))
	assert.False(t, IsValidPermissionName("Quotes.Read"))
	assert.False(t, IsValidPermissionName("quotes.read.all"))
}
