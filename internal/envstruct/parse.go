package envstruct

import (
	"github.com/myrjola/veritruth/internal/errors"
	"log/slog"
	"reflect"
	"strconv"
	"time"
)

var (
	ErrEnvNotSet    = errors.NewSentinel("environment variable not set")
	ErrInvalidValue = errors.NewSentinel("v must be a pointer to a struct")
	ErrParse        = errors.NewSentinel("environment variable has invalid value")
)

var durationType = reflect.TypeOf(time.Duration(0))

// Populate populates the fields of the pointer to struct v with values from the environment.
//
// lookupEnv is used to look up environment variables. It has the same signature as [os.LookupEnv].
// Fields in the struct v must be tagged with `env:"ENV_VAR"` where ENV_VAR is the name of the environment variable.
// If no environment variable matching ENV_VAR is provided, the field must be tagged with default value
// `envDefault:"value"` or else ErrEnvNotSet is returned.
//
// Supported field types are string, bool, the signed integer kinds and [time.Duration]. Untagged struct fields
// are populated recursively so that configuration can be split by concern.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr || ptrRef.IsNil() {
		return errors.Wrap(ErrInvalidValue, "not pointer", slog.Any("v", v))
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return errors.Wrap(ErrInvalidValue, "not struct", slog.Any("v", v))
	}

	if errorList := populateStruct(ref, lookupEnv); len(errorList) != 0 {
		return errors.Join(errorList...)
	}
	return nil
}

func populateStruct(ref reflect.Value, lookupEnv func(string) (string, bool)) []error {
	var (
		errorList []error
		refType   = ref.Type()
	)

	for i := range refType.NumField() {
		refField := ref.Field(i)
		refTypeField := refType.Field(i)
		tag := refTypeField.Tag

		envVarName, ok := tag.Lookup("env")
		if !ok {
			if refField.Kind() == reflect.Struct && refField.CanSet() {
				errorList = append(errorList, populateStruct(refField, lookupEnv)...)
			}
			continue
		}

		if !refField.CanSet() {
			errorList = append(errorList, errors.Wrap(ErrInvalidValue, "cannot set field",
				slog.String("fieldName", refTypeField.Name)))
			continue
		}

		val, err := envLookupWithFallback(envVarName, tag, lookupEnv)
		if err != nil {
			errorList = append(errorList, err)
			continue
		}

		if err = setField(refField, val); err != nil {
			errorList = append(errorList, errors.Wrap(err, "set field",
				slog.String("envVarName", envVarName),
				slog.String("fieldType", refField.Type().String()),
				slog.String("fieldName", refTypeField.Name),
			))
		}
	}

	return errorList
}

func setField(field reflect.Value, val string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(val)
		if err != nil {
			return errors.Wrap(ErrParse, "parse duration", slog.String("value", val))
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() { //nolint:exhaustive // unsupported kinds are handled by default
	case reflect.String:
		field.SetString(val)
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return errors.Wrap(ErrParse, "parse bool", slog.String("value", val))
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(val, 10, field.Type().Bits())
		if err != nil {
			return errors.Wrap(ErrParse, "parse int", slog.String("value", val))
		}
		field.SetInt(n)
	default:
		return errors.Wrap(ErrInvalidValue, "unsupported field type")
	}
	return nil
}

func envLookupWithFallback(
	envVarName string, tag reflect.StructTag, lookupEnv func(string) (string, bool)) (string, error) {
	envVarValue, ok := lookupEnv(envVarName)
	if !ok {
		envVarValue, ok = tag.Lookup("envDefault")
		if !ok {
			return "", errors.Wrap(ErrEnvNotSet, "environment variable not set", slog.String("envVarName", envVarName))
		}
	}
	return envVarValue, nil
}
