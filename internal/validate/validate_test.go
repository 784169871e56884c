package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	assert.True(t, Email("anna@example.se"))
	assert.False(t, Email("anna@example"))
	assert.False(t, Email("an na@example.se"))
	assert.False(t, Email(""))
}

func TestPassword_CountsRunes(t *testing.T) {
	assert.True(t, Password("sekret"))
	assert.True(t, Password("lösenö"))
	assert.False(t, Password("short"))
}

func TestPrice(t *testing.T) {
	assert.True(t, Price("0"))
	assert.True(t, Price(" 12.50 "))
	assert.False(t, Price("-1"))
	assert.False(t, Price("ten"))
}

func TestCredentials(t *testing.T) {
	es := Credentials("", "")
	require.Len(t, es, 2)
	assert.Equal(t, "email_required", es.Field("email").Key)
	assert.Equal(t, "password_required", es.Field("password").Key)

	es = Credentials("bad", "123")
	require.Len(t, es, 2)
	assert.Equal(t, "email_invalid", es[0].Key)
	assert.Equal(t, "password_min_length", es[1].Key)

	assert.Empty(t, Credentials("a@b.se", "123456"))
	assert.NoError(t, Credentials("a@b.se", "123456").Err())
}

func TestErrors_ErrMatchesSentinel(t *testing.T) {
	err := Credentials("", "123456").Err()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrValidation))

	var ve *Error
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "email", ve.Field)
	require.Equal(t, "Email is required", err.Error())
}

func TestRegistration(t *testing.T) {
	es := Registration("a@b.se", "123456", " ", "")
	require.Len(t, es, 2)
	assert.NotNil(t, es.Field("first_name"))
	assert.NotNil(t, es.Field("last_name"))
	assert.Nil(t, es.Field("email"))
}

func TestProduct(t *testing.T) {
	assert.Empty(t, Product("A-1", "Chair", "10"))

	es := Product("", "", "x")
	require.Len(t, es, 3)
	assert.Equal(t, []string{"article_number", "product", "price"}, []string{es[0].Field, es[1].Field, es[2].Field})
}

func TestNewPassword(t *testing.T) {
	assert.Nil(t, NewPassword("longenough"))
	assert.Len(t, NewPassword("tiny"), 1)
}

func TestEmailAddress(t *testing.T) {
	require.Nil(t, EmailAddress("anna@example.se"))
	require.Equal(t, "email_required", EmailAddress("").Field("email").Key)
	require.Equal(t, "email_invalid", EmailAddress("anna@").Field("email").Key)
}
