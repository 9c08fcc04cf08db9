package buildfile

import (
	"regexp"

	"github.com/dvolkhin/bazelproj/internal/project"
)

// Call-site patterns for the three scheme grammars. Each locates the opening
// parenthesis of one call; the balanced scanner isolates the parameter text.
var (
	xcodeprojRe     = regexp.MustCompile(`\bxcodeproj\s*\(`)
	xcschemesArrRe  = regexp.MustCompile(`\bxcschemes\s*=\s*\[`)
	simpleSchemeRe  = regexp.MustCompile(`\bdoordash_scheme\s*\(`)
	appclipSchemeRe = regexp.MustCompile(`\bdoordash_appclip_scheme\s*\(`)
	structSchemeRe  = regexp.MustCompile(`\bxcschemes\.scheme\s*\(`)
	schemeRunRe     = regexp.MustCompile(`\brun\s*=\s*xcschemes\.run\s*\(`)

	nameFieldRe         = regexp.MustCompile(`\bname\s*=\s*"([^"]+)"`)
	runEnvRe            = regexp.MustCompile(`\brun_env\s*=\s*\{([^}]*)\}`)
	envRe               = regexp.MustCompile(`\benv\s*=\s*\{([^}]*)\}`)
	buildTargetsArrRe   = regexp.MustCompile(`\bbuild_targets\s*=\s*\[`)
	launchTargetFieldRe = regexp.MustCompile(`\blaunch_target\s*=\s*"([^"]+)"`)
)

// extractSchemes scans every xcodeproj(...) block for its xcschemes = [...]
// array and collects one Scheme per recognized call, regardless of grammar.
// A call without a name field is skipped.
func extractSchemes(text string) []project.Scheme {
	schemes := []project.Scheme{}

	for _, loc := range xcodeprojRe.FindAllStringIndex(text, -1) {
		body, ok := parenBody(text, loc[1]-1)
		if !ok {
			continue
		}
		arrLoc := xcschemesArrRe.FindStringIndex(body)
		if arrLoc == nil {
			continue
		}
		arr, ok := bracketBody(body, arrLoc[1]-1)
		if !ok {
			continue
		}
		schemes = appendSimpleSchemes(arr, schemes)
		schemes = appendAppClipSchemes(arr, schemes)
		schemes = appendStructuredSchemes(arr, schemes)
	}

	return schemes
}

// appendSimpleSchemes handles doordash_scheme(name=..., run_env={...}).
func appendSimpleSchemes(arr string, schemes []project.Scheme) []project.Scheme {
	for _, loc := range simpleSchemeRe.FindAllStringIndex(arr, -1) {
		params, ok := parenBody(arr, loc[1]-1)
		if !ok {
			continue
		}
		name := nameFieldRe.FindStringSubmatch(params)
		if name == nil {
			continue
		}
		scheme := project.Scheme{
			Name:         name[1],
			Variant:      project.VariantSimple,
			BuildTargets: []string{},
		}
		if env := runEnvRe.FindStringSubmatch(params); env != nil {
			scheme.Environment = extractStringDict(env[1])
		}
		schemes = append(schemes, scheme)
	}
	return schemes
}

// appendAppClipSchemes handles doordash_appclip_scheme(name=...).
func appendAppClipSchemes(arr string, schemes []project.Scheme) []project.Scheme {
	for _, loc := range appclipSchemeRe.FindAllStringIndex(arr, -1) {
		params, ok := parenBody(arr, loc[1]-1)
		if !ok {
			continue
		}
		name := nameFieldRe.FindStringSubmatch(params)
		if name == nil {
			continue
		}
		schemes = append(schemes, project.Scheme{
			Name:         name[1],
			Variant:      project.VariantAppClip,
			BuildTargets: []string{},
		})
	}
	return schemes
}

// appendStructuredSchemes handles
// xcschemes.scheme(name=..., run=xcschemes.run(build_targets=[...], launch_target=..., env={...})).
// Each run field is independently optional; absence yields the zero value.
func appendStructuredSchemes(arr string, schemes []project.Scheme) []project.Scheme {
	for _, loc := range structSchemeRe.FindAllStringIndex(arr, -1) {
		params, ok := parenBody(arr, loc[1]-1)
		if !ok {
			continue
		}
		name := nameFieldRe.FindStringSubmatch(params)
		if name == nil {
			continue
		}
		scheme := project.Scheme{
			Name:         name[1],
			Variant:      project.VariantStructured,
			BuildTargets: []string{},
		}
		if runLoc := schemeRunRe.FindStringIndex(params); runLoc != nil {
			if run, ok := parenBody(params, runLoc[1]-1); ok {
				if btLoc := buildTargetsArrRe.FindStringIndex(run); btLoc != nil {
					if bt, ok := bracketBody(run, btLoc[1]-1); ok {
						scheme.BuildTargets = extractStringArray(bt)
					}
				}
				if lt := launchTargetFieldRe.FindStringSubmatch(run); lt != nil {
					scheme.LaunchTarget = lt[1]
				}
				if env := envRe.FindStringSubmatch(run); env != nil {
					scheme.Environment = extractStringDict(env[1])
				}
			}
		}
		schemes = append(schemes, scheme)
	}
	return schemes
}
