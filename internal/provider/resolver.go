package provider

import (
	"fmt"
	"os"
	"path/filepath"

	"ptx/internal/domain"
	"ptx/internal/expand"
)

// Resolver maps each data-provider directive to exactly one capability.
// Implements expand.ProviderResolver.
type Resolver struct{}

// NewResolver creates a Resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve builds the capability for one directive. Unknown directive kinds
// and unreadable test sources are resolution errors; the expander logs them
// and degrades the method to a deferred case.
func (r *Resolver) Resolve(method domain.TestMethod, directive domain.DataProviderDirective) (expand.ProviderCapability, error) {
	switch directive.Kind {
	case domain.DirectiveInline:
		return NewInlineRows(directive.InlineRows, directive.Syntax), nil

	case domain.DirectiveFile:
		path := directive.Target
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(method.FilePath), path)
		}
		return NewFileRows(path), nil

	case domain.DirectiveMember:
		return r.resolveMember(method, directive.Target)

	case domain.DirectiveExternalMember:
		// Another class's provider; only the PHP runtime can evaluate it
		return &RuntimeRows{
			reason: fmt.Sprintf("provider %s::%s lives outside the test class", directive.TargetClass, directive.Target),
		}, nil

	default:
		return nil, fmt.Errorf("unknown directive kind %d on %s", directive.Kind, method.DisplayName())
	}
}

// resolveMember reads the test source and tries the static path first. A
// provider method that exists but cannot be read statically declines
// enumeration; a missing provider method is an authoring error.
func (r *Resolver) resolveMember(method domain.TestMethod, providerName string) (expand.ProviderCapability, error) {
	source, err := os.ReadFile(method.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read test source %s: %w", method.FilePath, err)
	}

	capability, found := staticMemberRows(string(source), providerName)
	if !found {
		return nil, fmt.Errorf("provider method %s not found in %s", providerName, method.FilePath)
	}
	return capability, nil
}
