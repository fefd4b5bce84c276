package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func TestCredential_SetAndVerify(t *testing.T) {
	user := &User{Username: "chef1"}
	require.NoError(t, user.SetPassword("hunter2", bcrypt.MinCost))

	ok, err := user.Authenticate("hunter2")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = user.Authenticate("wrong")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCredential_Salted(t *testing.T) {
	var a, b Credential
	require.NoError(t, a.Set("hunter2", bcrypt.MinCost))
	require.NoError(t, b.Set("hunter2", bcrypt.MinCost))

	assert.NotEqual(t, a.hash, b.hash)
	assert.NotEqual(t, "hunter2", a.hash)
	assert.True(t, strings.HasPrefix(a.hash, "$2a$"))
}

func TestCredential_SetOverwrites(t *testing.T) {
	var c Credential
	require.NoError(t, c.Set("first", bcrypt.MinCost))
	require.NoError(t, c.Set("second", bcrypt.MinCost))

	ok, _ := c.Verify("first")
	assert.False(t, ok)
	ok, _ = c.Verify("second")
	assert.True(t, ok)
}

func TestCredential_VerifyInvalidHash(t *testing.T) {
	var unset Credential
	_, err := unset.Verify("anything")
	assert.ErrorIs(t, err, ErrCredentialNotSet)

	broken := Credential{hash: "not-a-bcrypt-hash"}
	ok, err := broken.Verify("anything")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCredential_NotReadable(t *testing.T) {
	var c Credential
	require.NoError(t, c.Set("hunter2", bcrypt.MinCost))

	_, err := json.Marshal(c)
	assert.ErrorIs(t, err, ErrCredentialAccess)

	_, err = c.MarshalText()
	assert.ErrorIs(t, err, ErrCredentialAccess)

	var empty Credential
	_, err = json.Marshal(empty)
	assert.ErrorIs(t, err, ErrCredentialAccess)

	assert.NotContains(t, fmt.Sprintf("%v %s %#v", c, c, c), c.hash)
}

func TestCredential_RejectsOverlongPassword(t *testing.T) {
	var c Credential
	require.NoError(t, c.Set(strings.Repeat("a", MaxPasswordBytes), bcrypt.MinCost))

	// 40 runes, 80 bytes.
	err := c.Set(strings.Repeat("é", 40), bcrypt.MinCost)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)
	assert.Equal(t, PasswordTooLongMessage, ve.Message)

	ok, _ := c.Verify(strings.Repeat("a", MaxPasswordBytes))
	assert.True(t, ok)
}

func TestCredential_ScanValue(t *testing.T) {
	var c Credential
	require.NoError(t, c.Set("hunter2", bcrypt.MinCost))

	v, err := c.Value()
	require.NoError(t, err)

	var loaded Credential
	require.NoError(t, loaded.Scan(v))
	ok, err := loaded.Verify("hunter2")
	assert.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, loaded.Scan([]byte(v.(string))))
	assert.True(t, loaded.IsSet())

	require.NoError(t, loaded.Scan(nil))
	assert.False(t, loaded.IsSet())

	assert.Error(t, loaded.Scan(42))
}

func TestUser_Validate(t *testing.T) {
	assert.NoError(t, (&User{Username: "chef1"}).Validate())

	err := (&User{Username: "  "}).Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "username", ve.Field)
}

func TestValidateInstructions(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", true},
		{"49 chars", strings.Repeat("x", 49), true},
		{"50 chars", strings.Repeat("x", 50), false},
		{"long", strings.Repeat("stir ", 40), false},
		{"49 multibyte runes", strings.Repeat("é", 49), true},
		{"50 multibyte runes", strings.Repeat("é", 50), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInstructions(tt.input)
			if tt.wantErr {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "instructions", ve.Field)
				assert.Equal(t, "Instructions must be at least 50 characters", ve.Message)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle(nil))
	assert.NoError(t, ValidateTitle(strPtr("Soup")))

	for _, blank := range []string{"", "   ", "\t\n"} {
		err := ValidateTitle(strPtr(blank))
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Title is required", ve.Message)
	}
}

func TestNewRecipe(t *testing.T) {
	_, err := NewRecipe(strPtr("Soup"), strings.Repeat("x", 49), nil, "owner")
	assert.True(t, IsValidationError(err))

	minutes := 30
	r, err := NewRecipe(strPtr("Soup"), strings.Repeat("x", 50), &minutes, "owner")
	require.NoError(t, err)
	assert.Equal(t, "Soup", r.TitleValue())
	assert.Equal(t, "owner", r.UserID)
	assert.Equal(t, 30, *r.MinutesToComplete)

	_, err = NewRecipe(strPtr("   "), strings.Repeat("x", 50), nil, "owner")
	assert.EqualError(t, err, "Title is required")
}

func TestRecipe_SettersKeepValidState(t *testing.T) {
	r, err := NewRecipe(strPtr("Soup"), strings.Repeat("x", 50), nil, "owner")
	require.NoError(t, err)

	assert.Error(t, r.SetInstructions("too short"))
	assert.Equal(t, strings.Repeat("x", 50), r.Instructions)

	assert.Error(t, r.SetTitle(strPtr(" ")))
	assert.Equal(t, "Soup", r.TitleValue())

	assert.NoError(t, r.Validate())

	r.Instructions = "bypassed"
	assert.Error(t, r.Validate())
}

func TestUser_ViewOmitsCredentialAndBackReference(t *testing.T) {
	user := &User{ID: "u1", Username: "chef1", Bio: "cooks"}
	require.NoError(t, user.SetPassword("hunter2", bcrypt.MinCost))
	user.Recipes = []Recipe{
		{ID: "r1", Title: strPtr("Soup"), Instructions: strings.Repeat("a", 50), UserID: "u1", User: user},
		{ID: "r2", Title: strPtr("Stew"), Instructions: strings.Repeat("b", 50), UserID: "u1"},
	}

	body, err := json.Marshal(user.View())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.NotContains(t, decoded, "password_hash")
	assert.NotContains(t, decoded, "password")
	assert.NotContains(t, string(body), "$2a$")

	recipes := decoded["recipes"].([]interface{})
	require.Len(t, recipes, 2)
	for _, raw := range recipes {
		recipe := raw.(map[string]interface{})
		assert.NotContains(t, recipe, "user")
		assert.Equal(t, "u1", recipe["user_id"])
	}
}

func TestUser_JSONOmitsCredential(t *testing.T) {
	user := &User{ID: "u1", Username: "chef1"}
	require.NoError(t, user.SetPassword("hunter2", bcrypt.MinCost))

	body, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "$2a$")
}

func TestRecipe_ViewIncludesOwnerWithoutRecipes(t *testing.T) {
	owner := &User{ID: "u1", Username: "chef1", Recipes: []Recipe{{ID: "r1"}}}
	recipe := &Recipe{ID: "r1", Title: strPtr("Soup"), Instructions: strings.Repeat("a", 50), UserID: "u1"}

	body, err := json.Marshal(recipe.View(owner))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	ownerJSON := decoded["user"].(map[string]interface{})
	assert.Equal(t, "chef1", ownerJSON["username"])
	assert.NotContains(t, ownerJSON, "recipes")
}
