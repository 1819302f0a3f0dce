package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"travel-admin/internal/locale"
	"travel-admin/internal/media"

	"github.com/go-playground/validator/v10"
)

var (
	multilingualRegex  = regexp.MustCompile(`^[A-Za-z0-9\x{0600}-\x{06FF}çÇğĞıİöÖşŞüÜ\s.,!?'\-()]+$`)
	conditionTextRegex = regexp.MustCompile(`^[\p{L}\p{N}\s.,?!'\-()،؟]+$`)
	priceRegex         = regexp.MustCompile(`^\$?\d+(\.\d{1,2})?$`)
	groupSizeRegex     = regexp.MustCompile(`^(\d+)(?:-(\d+))?$`)
)

const maxGroupSize = 1000

// validate is the shared engine; every form and resource goes through it.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("multilingual", validateMultilingual)
	_ = v.RegisterValidation("condition_text", validateConditionText)
	_ = v.RegisterValidation("price", validatePrice)
	_ = v.RegisterValidation("group_size", validateGroupSize)
	_ = v.RegisterValidation("int_range", validateIntRange)
	_ = v.RegisterValidation("image_mime", validateImageMime)
	_ = v.RegisterValidation("image_size", validateImageSize)

	return v
}

func validateMultilingual(fl validator.FieldLevel) bool {
	return multilingualRegex.MatchString(fl.Field().String())
}

func validateConditionText(fl validator.FieldLevel) bool {
	return conditionTextRegex.MatchString(fl.Field().String())
}

func validatePrice(fl validator.FieldLevel) bool {
	return priceRegex.MatchString(fl.Field().String())
}

// validateGroupSize accepts "N" or "N-M" with 1 <= N <= M <= 1000.
func validateGroupSize(fl validator.FieldLevel) bool {
	m := groupSizeRegex.FindStringSubmatch(fl.Field().String())
	if m == nil {
		return false
	}
	low, err := strconv.Atoi(m[1])
	if err != nil || low < 1 || low > maxGroupSize {
		return false
	}
	if m[2] == "" {
		return true
	}
	high, err := strconv.Atoi(m[2])
	return err == nil && high >= low && high <= maxGroupSize
}

// validateIntRange checks an integer string against "int_range=<min>-<max>".
func validateIntRange(fl validator.FieldLevel) bool {
	lo, hi, ok := strings.Cut(fl.Param(), "-")
	if !ok {
		return false
	}
	lower, err1 := strconv.Atoi(lo)
	upper, err2 := strconv.Atoi(hi)
	n, err3 := strconv.Atoi(fl.Field().String())
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	return n >= lower && n <= upper
}

func validateImageMime(fl validator.FieldLevel) bool {
	_, err := media.CheckImage(fl.Field().String())
	return !errors.Is(err, media.ErrUnsupportedImage) && !errors.Is(err, media.ErrInvalidDataURI)
}

func validateImageSize(fl validator.FieldLevel) bool {
	_, err := media.CheckImage(fl.Field().String())
	return !errors.Is(err, media.ErrImageTooLarge)
}

func reasonFor(tag string) string {
	switch tag {
	case "required":
		return locale.ReasonRequired
	case "min":
		return locale.ReasonTooShort
	case "max":
		return locale.ReasonTooLong
	case "multilingual", "condition_text":
		return locale.ReasonInvalidCharacters
	case "price":
		return locale.ReasonInvalidPrice
	case "group_size":
		return locale.ReasonInvalidGroupSize
	case "int_range":
		return locale.ReasonOutOfRange
	case "datauri":
		return locale.ReasonInvalidImage
	case "image_mime":
		return locale.ReasonInvalidImageType
	case "image_size":
		return locale.ReasonImageTooLarge
	case "datetime":
		return locale.ReasonInvalidDate
	case "oneof":
		return locale.ReasonInvalidChoice
	}
	return locale.ReasonInvalid
}

// Field tags shared by trip forms and resources.
const (
	TagTitle       = "required,min=3,max=100,multilingual"
	TagLabel       = "required,min=2,max=100,multilingual"
	TagOptLabel    = "omitempty,min=2,max=100,multilingual"
	TagDescription = "required,min=3,max=2000,multilingual"
	TagOptText     = "omitempty,max=2000,multilingual"
	TagCondition   = "omitempty,min=3,max=2000,condition_text"
	TagPrice       = "required,price"
	TagGroupSize   = "omitempty,group_size"
	TagHours       = "required,int_range=1-24"
	TagDays        = "required,int_range=1-365"
	TagImage       = "required,datauri,image_mime,image_size"
	TagOptImage    = "omitempty,datauri,image_mime,image_size"
	TagQuestion    = "required,min=3,max=300,multilingual"
	TagDate        = "required,datetime=2006-01-02"
	TagID          = "required"
)
