package apierrors_test

import (
	"encoding/json"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"taskmanager/pkg/apierrors"
	"taskmanager/pkg/translator"
)

func TestMain(m *testing.M) {
	translator.Translator = i18n.NewBundle(language.English)
	err := translator.Translator.AddMessages(language.English, &i18n.Message{
		ID:    "test_key",
		Other: "Test message",
	})
	if err != nil {
		return
	}
	err = translator.Translator.AddMessages(language.French, &i18n.Message{
		ID:    "test_key",
		Other: "Message de test",
	})
	if err != nil {
		return
	}
	m.Run()
}

func TestCreateError_ReturnsJsonErr(t *testing.T) {
	err := apierrors.CreateError(400, "test_key", "en")
	assert.False(t, err.Status)
	assert.Equal(t, 400, err.Code)
	assert.Equal(t, "Test message", err.Message)
}

func TestCreateError_Localized(t *testing.T) {
	err := apierrors.CreateError(404, "test_key", "fr-FR,fr;q=0.9")
	assert.Equal(t, "Message de test", err.Message)
}

func TestCreateError_JSONShape(t *testing.T) {
	body, err := json.Marshal(apierrors.CreateError(403, "test_key", "en"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":false,"code":403,"message":"Test message"}`, string(body))
}

func TestGetTransErrorMsg_FallbackToKey(t *testing.T) {
	msg := apierrors.GetTransErrorMsg("unknown_key", "en")
	assert.Equal(t, "unknown_key", msg)
}

func TestJsonErr_ErrorMethod(t *testing.T) {
	err := apierrors.CreateError(500, "test_key", "en")
	assert.Equal(t, "Code: 500, Message: Test message", err.Error())
}
