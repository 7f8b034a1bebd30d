package validation

import (
	"regexp"
	"time"
)

var (
	startsUppercase   = regexp.MustCompile(`^[A-Z]`)
	containsUppercase = regexp.MustCompile(`[A-Z]`)
	addressPattern    = regexp.MustCompile(`^\d|[A-Z][\dA-Za-z\s,]{10,100}$`)
	telephonePattern  = regexp.MustCompile(`^[0-9]{3}\s?[0-9]{5,7}$`)
	medicalPattern    = regexp.MustCompile(`^\d|[a-zA-Z]?[\dA-Za-z\s,]{0,100}$`)

	dobFloor = time.Date(1920, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Signup constrains new-member registration payloads.
var Signup = Schema{
	Name: "signup",
	Fields: []Field{
		{Name: "firstName", Rules: []Rule{
			Alphanumeric(),
			Pattern(startsUppercase, "must begin with an uppercase letter"),
			LenBetween(3, 15),
		}},
		{Name: "lastName", Rules: []Rule{
			Alphanumeric(),
			Pattern(containsUppercase, "must contain an uppercase letter"),
			LenBetween(3, 15),
		}},
		{Name: "dob", Rules: []Rule{DateBetween(dobFloor)}},
		{Name: "address", Rules: []Rule{
			MaxLen(100),
			Pattern(addressPattern, "must be a street address"),
		}},
		{Name: "telephone", Rules: []Rule{
			Pattern(telephonePattern, "must be digits in the form 012 34567"),
		}},
		{Name: "email", Rules: []Rule{MaxLen(30), Email()}},
		{Name: "medical", Rules: []Rule{
			MaxLen(100),
			Pattern(medicalPattern, "must contain only letters, digits, spaces, and commas"),
		}},
		{Name: "password", Rules: []Rule{LenBetween(8, 30)}},
	},
}

// Login constrains login payloads. The password carries no format rule;
// any non-empty value is checked against the stored hash.
var Login = Schema{
	Name: "login",
	Fields: []Field{
		{Name: "email", Rules: []Rule{Email()}},
		{Name: "password"},
	},
}

// SettingsUpdate constrains profile edits. Deliberately looser than
// Signup: every field is required but length and format are not
// re-checked.
var SettingsUpdate = Schema{
	Name: "settingsUpdate",
	Fields: []Field{
		{Name: "firstName"},
		{Name: "lastName"},
		{Name: "address"},
		{Name: "telephone"},
		{Name: "email", Rules: []Rule{Email()}},
		{Name: "medical"},
		{Name: "password"},
	},
}
