package broadcast

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dynamic-superb/taskops/internal/githubauth"
)

const (
	tokenSourceSeparatorConstant               = ":"
	environmentTokenSourceTypeValueConstant    = "env"
	fileTokenSourceTypeValueConstant           = "file"
	environmentNameMissingErrorMessageConstant = "environment variable name must be provided"
	filePathMissingErrorMessageConstant        = "token file path must be provided"
	environmentTokenMissingTemplateConstant    = "environment variable %s is not set"
	fileReadErrorTemplateConstant              = "unable to read token file %s: %w"
	fileTokenEmptyErrorTemplateConstant        = "token file %s is empty"
	unsupportedTokenSourceTemplateConstant     = "unsupported token source type %q"
	defaultTokenMissingTemplateConstant        = "no GitHub token found in %s"
	tokenVariableSeparatorConstant             = ", "
)

// TokenSourceType enumerates the supported token retrieval mechanisms.
type TokenSourceType string

// Token source types. TokenSourceTypeDefault consults the standard GitHub
// token variables.
const (
	TokenSourceTypeDefault     TokenSourceType = ""
	TokenSourceTypeEnvironment TokenSourceType = TokenSourceType(environmentTokenSourceTypeValueConstant)
	TokenSourceTypeFile        TokenSourceType = TokenSourceType(fileTokenSourceTypeValueConstant)
)

// TokenSource specifies where the API token comes from.
type TokenSource struct {
	Type      TokenSourceType
	Reference string
}

// ParseTokenSource interprets "env:NAME", "file:/path" or a bare variable
// name. An empty value selects the default GitHub variables.
func ParseTokenSource(sourceValue string) (TokenSource, error) {
	trimmedValue := strings.TrimSpace(sourceValue)
	if len(trimmedValue) == 0 {
		return TokenSource{Type: TokenSourceTypeDefault}, nil
	}

	components := strings.SplitN(trimmedValue, tokenSourceSeparatorConstant, 2)
	if len(components) == 1 {
		return TokenSource{Type: TokenSourceTypeEnvironment, Reference: trimmedValue}, nil
	}

	sourceType := strings.ToLower(strings.TrimSpace(components[0]))
	reference := strings.TrimSpace(components[1])

	switch sourceType {
	case environmentTokenSourceTypeValueConstant:
		if len(reference) == 0 {
			return TokenSource{}, errors.New(environmentNameMissingErrorMessageConstant)
		}
		return TokenSource{Type: TokenSourceTypeEnvironment, Reference: reference}, nil
	case fileTokenSourceTypeValueConstant:
		if len(reference) == 0 {
			return TokenSource{}, errors.New(filePathMissingErrorMessageConstant)
		}
		return TokenSource{Type: TokenSourceTypeFile, Reference: reference}, nil
	default:
		return TokenSource{}, fmt.Errorf(unsupportedTokenSourceTemplateConstant, sourceType)
	}
}

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// TokenResolver reads tokens from their configured sources.
type TokenResolver struct {
	environmentLookup githubauth.EnvironmentLookup
	fileReader        FileReader
}

// NewTokenResolver creates a resolver. Nil collaborators read the process
// environment and the file system.
func NewTokenResolver(environmentLookup githubauth.EnvironmentLookup, fileReader FileReader) *TokenResolver {
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	if fileReader == nil {
		fileReader = os.ReadFile
	}
	return &TokenResolver{environmentLookup: environmentLookup, fileReader: fileReader}
}

// Resolve returns the trimmed token named by source.
func (resolver *TokenResolver) Resolve(source TokenSource) (string, error) {
	switch source.Type {
	case TokenSourceTypeDefault:
		token, found := githubauth.ResolveToken(resolver.environmentLookup)
		if !found {
			return "", fmt.Errorf(defaultTokenMissingTemplateConstant, strings.Join(githubauth.TokenVariables(), tokenVariableSeparatorConstant))
		}
		return token, nil
	case TokenSourceTypeEnvironment:
		value, found := resolver.environmentLookup(source.Reference)
		trimmedValue := strings.TrimSpace(value)
		if !found || len(trimmedValue) == 0 {
			return "", fmt.Errorf(environmentTokenMissingTemplateConstant, source.Reference)
		}
		return trimmedValue, nil
	case TokenSourceTypeFile:
		contents, readError := resolver.fileReader(source.Reference)
		if readError != nil {
			return "", fmt.Errorf(fileReadErrorTemplateConstant, source.Reference, readError)
		}
		trimmedValue := strings.TrimSpace(string(contents))
		if len(trimmedValue) == 0 {
			return "", fmt.Errorf(fileTokenEmptyErrorTemplateConstant, source.Reference)
		}
		return trimmedValue, nil
	default:
		return "", fmt.Errorf(unsupportedTokenSourceTemplateConstant, source.Type)
	}
}
