package server

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/leebenson/conform"
)

var translator ut.Translator

func init() {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = enTranslations.RegisterDefaultTranslations(v, translator)
	}
}

// decode binds the request into v, trims it with conform and returns readable validation errors.
// Validation runs again after trimming so whitespace-only values fail "required".
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBind(v); err != nil {
		return translateError(err)
	}
	if err := conform.Strings(v); err != nil {
		return err
	}
	return translateError(binding.Validator.ValidateStruct(v))
}

func translateError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, e.Translate(translator))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}
