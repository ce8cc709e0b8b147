package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkinplus-backend/models"
)

func registerForm(username, email, phone string) url.Values {
	return url.Values{
		"owner_name":       {"Dr. Rivera"},
		"username":         {username},
		"email":            {email},
		"phone":            {phone},
		"password":         {"secret99"},
		"confirm_password": {"secret99"},
	}
}

func TestRegisterAndLoginByPhone(t *testing.T) {
	_, r := setupServer(t)

	w := postForm(r, "/auth/register", "", registerForm("rivera", "rivera@example.com", "5551234567"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = postForm(r, "/auth/login", "", url.Values{
		"phone":    {"5551234567"},
		"password": {"secret99"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "token")
	assert.Contains(t, w.Body.String(), `"displayName":"Dr. Rivera"`)
}

func TestRegisterDuplicatePhoneCreatesNoAccount(t *testing.T) {
	db, r := setupServer(t)

	w := postForm(r, "/auth/register", "", registerForm("rivera", "rivera@example.com", "5551234567"))
	require.Equal(t, http.StatusCreated, w.Code)

	// Different username and email, same phone: rejected before any row
	w = postForm(r, "/auth/register", "", registerForm("other", "other@example.com", "5551234567"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "mobile number is already registered")

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Equal(t, int64(1), users)
}

func TestRegisterPasswordRules(t *testing.T) {
	db, r := setupServer(t)

	form := registerForm("rivera", "rivera@example.com", "5551234567")
	form.Set("confirm_password", "different")
	w := postForm(r, "/auth/register", "", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	form = registerForm("rivera", "rivera@example.com", "5551234567")
	form.Set("password", "abc")
	form.Set("confirm_password", "abc")
	w = postForm(r, "/auth/register", "", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Zero(t, users)
}

func TestLoginUnknownAccount(t *testing.T) {
	_, r := setupServer(t)

	w := postForm(r, "/auth/login", "", url.Values{
		"email":    {"ghost@example.com"},
		"password": {"whatever1"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Please sign up to continue")
}

func TestLoginWrongPassword(t *testing.T) {
	db, r := setupServer(t)
	createUser(t, db, "rivera")

	w := postForm(r, "/auth/login", "", url.Values{
		"username": {"rivera"},
		"password": {"wrongpass"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeReturnsDerivedDisplayName(t *testing.T) {
	db, r := setupServer(t)
	user := createUser(t, db, "rivera")

	code, body := getJSON(t, r, "/auth/me", bearerToken(t, user))
	require.Equal(t, http.StatusOK, code)

	me := body["user"].(map[string]interface{})
	// No display name set, so it falls back to the username
	assert.Equal(t, "rivera", me["displayName"])
}
