package validator

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		email     string
		first     string
		last      string
		password  string
		wantField string
	}{
		{"valid", "nicorlas", "n@x.com", "Nico", "R", "password1", ""},
		{"empty user name", "", "n@x.com", "Nico", "R", "password1", "user_name"},
		{"long user name", strings.Repeat("a", 51), "n@x.com", "Nico", "R", "password1", "user_name"},
		{"bad email", "nicorlas", "not-an-email", "Nico", "R", "password1", "email"},
		{"display name email", "nicorlas", "Bob Smith <bob@x.com>", "Nico", "R", "password1", "email"},
		{"bracketed email", "nicorlas", "<bob@x.com>", "Nico", "R", "password1", "email"},
		{"padded email", "nicorlas", " n@x.com ", "Nico", "R", "password1", "email"},
		{"padded long first name", "nicorlas", "n@x.com", "  " + strings.Repeat("n", 49) + "  ", "R", "password1", "first_name"},
		{"fifty character name", strings.Repeat("a", 50), "n@x.com", "Nico", "R", "password1", ""},
		{"empty first name", "nicorlas", "n@x.com", " ", "R", "password1", "first_name"},
		{"long last name", "nicorlas", "n@x.com", "Nico", strings.Repeat("r", 51), "password1", "last_name"},
		{"short password", "nicorlas", "n@x.com", "Nico", "R", "1234567", "password"},
		{"long password", "nicorlas", "n@x.com", "Nico", "R", strings.Repeat("p", 59), "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.username, tt.email, tt.first, tt.last, tt.password)
			if tt.wantField == "" {
				if errs.HasErrors() {
					t.Errorf("unexpected errors: %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok || len(errs) != 1 {
				t.Errorf("errs = %v, want only %s", errs, tt.wantField)
			}
		})
	}
}

func TestValidateTweet(t *testing.T) {
	if errs := ValidateTweet("hi"); errs.HasErrors() {
		t.Errorf("hi: %v", errs)
	}
	if errs := ValidateTweet(strings.Repeat("é", 280)); errs.HasErrors() {
		t.Errorf("280 runes should be accepted: %v", errs)
	}
	if errs := ValidateTweet(strings.Repeat("x", 281)); !errs.HasErrors() {
		t.Error("281 characters accepted")
	}
	if errs := ValidateTweet("   "); !errs.HasErrors() {
		t.Error("blank content accepted")
	}
}

func TestValidateUserPatchOnlyChecksPresentFields(t *testing.T) {
	if errs := ValidateUserPatch(nil, nil, nil); errs.HasErrors() {
		t.Errorf("empty patch: %v", errs)
	}
	bad := "nope"
	empty := ""
	errs := ValidateUserPatch(&bad, &empty, nil)
	if _, ok := errs["email"]; !ok {
		t.Error("missing email error")
	}
	if _, ok := errs["first_name"]; !ok {
		t.Error("missing first_name error")
	}
	if _, ok := errs["last_name"]; ok {
		t.Error("last_name was not in the patch")
	}
}

func TestValidatePostTweetChecksWholeAuthor(t *testing.T) {
	author := domain.User{
		ID:        uuid.New(),
		UserName:  "nicorlas",
		Email:     "n@x.com",
		FirstName: "Nico",
		LastName:  "R",
	}
	if errs := ValidatePostTweet("hi", author); errs.HasErrors() {
		t.Errorf("valid author: %v", errs)
	}

	errs := ValidatePostTweet("hi", domain.User{UserName: "ghost", Email: "not-an-email"})
	for _, field := range []string{"by.user_id", "by.email", "by.first_name", "by.last_name"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing %s error in %v", field, errs)
		}
	}
	if _, ok := errs["by.user_name"]; ok {
		t.Errorf("user name ghost rejected: %v", errs)
	}
}

func TestValidateEditTweet(t *testing.T) {
	if errs := ValidateEditTweet(nil); errs.HasErrors() {
		t.Errorf("absent content: %v", errs)
	}
	blank := " "
	if errs := ValidateEditTweet(&blank); !errs.HasErrors() {
		t.Error("blank content accepted")
	}
}
