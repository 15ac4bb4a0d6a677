package usecase

import (
	"errors"
	"net/http"

	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgerror"
)

//nolint:gochecknoglobals // sentinel errors
var (
	ErrMissingFile     = pkgerror.NewValidation("Nenhum arquivo enviado!", pkgerror.CodeInvalidFormat)
	ErrInvalidFilename = pkgerror.NewValidation("Nome do arquivo inválido!", pkgerror.CodeInvalidFormat)
	ErrUnsupportedType = pkgerror.NewValidation("Tipo de arquivo não permitido!", pkgerror.CodeInvalidFormat)
)

const (
	parseFailurePrefix = "Erro ao processar arquivo: "
	saveFailurePrefix  = "Erro ao salvar arquivo: "
)

// IsTooLarge reports whether err comes from reading past the body limit.
func IsTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func parseFailure(err error) error {
	return pkgerror.NewServerMessage(err, parseFailurePrefix+err.Error())
}

func saveFailure(err error) error {
	if IsTooLarge(err) {
		return pkgerror.NewTooLarge(err)
	}
	return pkgerror.NewServerMessage(err, saveFailurePrefix+err.Error())
}
