package scancode

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-hclog"
)

// copyrightToleranceLines is the maximum line distance between a copyright
// statement and a license start line for the two to be associated. Five lines
// bridge the blank lines between a copyright header and its license but do
// not reach into an adjacent block.
const copyrightToleranceLines = 5

// CompileLicenseFileMatchers compiles path glob patterns for commonly named
// license files. Patterns are matched case-insensitively against the full
// relative path; the separator keeps wildcards from crossing directories, so
// only top-level license files match. Invalid patterns are skipped.
func CompileLicenseFileMatchers(patterns []string, logger hclog.Logger) []glob.Glob {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		matcher, err := glob.Compile(strings.ToLower(pattern), '/')
		if err != nil {
			logger.Warn("skipping invalid license file pattern", "pattern", pattern, "error", err)
			continue
		}
		matchers = append(matchers, matcher)
	}
	return matchers
}

// rootLicense returns the license of the unique finding located in a commonly
// named license file, or the empty string when there are zero or multiple
// such findings.
func rootLicense(findings []LicenseFinding, matchers []glob.Glob) string {
	var root *LicenseFinding

	for i := range findings {
		path := strings.ToLower(findings[i].Location.Path)
		for _, matcher := range matchers {
			if !matcher.Match(path) {
				continue
			}
			if root != nil {
				return ""
			}
			root = &findings[i]
			break
		}
	}

	if root == nil {
		return ""
	}
	return root.License
}

// closestCopyrightStatements returns the copyrights whose start line lies
// within tolerance lines of the given license start line. Tolerance is
// symmetric around the license start line.
func closestCopyrightStatements(copyrights []CopyrightFinding, licenseStartLine, tolerance int) []CopyrightFinding {
	var closest []CopyrightFinding
	for _, copyright := range copyrights {
		distance := copyright.Location.StartLine - licenseStartLine
		if distance < 0 {
			distance = -distance
		}
		if distance <= tolerance {
			closest = append(closest, copyright)
		}
	}
	return closest
}

// associateFileFindings binds the copyrights of a single file to its licenses.
// With no license, all copyrights go to the root license if there is one,
// otherwise they are dropped. With one license, all copyrights go to it. With
// multiple licenses each license gets its closest copyrights; a statement may
// attach to several licenses when it lies within tolerance of each.
func associateFileFindings(licenses []LicenseFinding, copyrights []CopyrightFinding, rootLicense string, toleranceLines int) (map[string][]CopyrightFinding, error) {
	paths := make(map[string]struct{})
	for _, license := range licenses {
		paths[license.Location.Path] = struct{}{}
	}
	for _, copyright := range copyrights {
		paths[copyright.Location.Path] = struct{}{}
	}
	if len(paths) > 1 {
		return nil, fmt.Errorf("findings of multiple files cannot be associated at once: %d paths", len(paths))
	}

	copyrightsForLicenses := make(map[string][]CopyrightFinding)

	switch len(licenses) {
	case 0:
		if len(copyrights) > 0 && rootLicense != "" {
			copyrightsForLicenses[rootLicense] = copyrights
		}
	case 1:
		if len(copyrights) > 0 {
			copyrightsForLicenses[licenses[0].License] = copyrights
		}
	default:
		for _, license := range licenses {
			closest := closestCopyrightStatements(copyrights, license.Location.StartLine, toleranceLines)
			if len(closest) > 0 {
				copyrightsForLicenses[license.License] = append(copyrightsForLicenses[license.License], closest...)
			}
		}
	}

	return copyrightsForLicenses, nil
}

// AssociateFindings merges raw license and copyright findings into one
// LicenseFindings per license, with copyrights grouped by statement and
// location sets unioned across files. The output is fully sorted so that
// repeated runs over the same input produce identical results.
func AssociateFindings(licenses []LicenseFinding, copyrights []CopyrightFinding, matchers []glob.Glob) ([]LicenseFindings, error) {
	licensesByPath := make(map[string][]LicenseFinding)
	for _, license := range licenses {
		licensesByPath[license.Location.Path] = append(licensesByPath[license.Location.Path], license)
	}

	copyrightsByPath := make(map[string][]CopyrightFinding)
	for _, copyright := range copyrights {
		copyrightsByPath[copyright.Location.Path] = append(copyrightsByPath[copyright.Location.Path], copyright)
	}

	paths := make(map[string]struct{})
	for path := range licensesByPath {
		paths[path] = struct{}{}
	}
	for path := range copyrightsByPath {
		paths[path] = struct{}{}
	}

	root := rootLicense(licenses, matchers)

	// license -> statement -> set of locations
	copyrightsForLicenses := make(map[string]map[string]map[TextLocation]struct{})
	for path := range paths {
		fileFindings, err := associateFileFindings(licensesByPath[path], copyrightsByPath[path], root, copyrightToleranceLines)
		if err != nil {
			return nil, err
		}

		for license, findings := range fileFindings {
			statements := copyrightsForLicenses[license]
			if statements == nil {
				statements = make(map[string]map[TextLocation]struct{})
				copyrightsForLicenses[license] = statements
			}
			for _, finding := range findings {
				locations := statements[finding.Statement]
				if locations == nil {
					locations = make(map[TextLocation]struct{})
					statements[finding.Statement] = locations
				}
				locations[finding.Location] = struct{}{}
			}
		}
	}

	locationsForLicenses := make(map[string]map[TextLocation]struct{})
	for _, license := range licenses {
		locations := locationsForLicenses[license.License]
		if locations == nil {
			locations = make(map[TextLocation]struct{})
			locationsForLicenses[license.License] = locations
		}
		locations[license.Location] = struct{}{}
	}

	allLicenses := make(map[string]struct{})
	for license := range locationsForLicenses {
		allLicenses[license] = struct{}{}
	}
	for license := range copyrightsForLicenses {
		allLicenses[license] = struct{}{}
	}

	findings := make([]LicenseFindings, 0, len(allLicenses))
	for license := range allLicenses {
		finding := LicenseFindings{
			License:    license,
			Locations:  locationSetToSlice(locationsForLicenses[license]),
			Copyrights: statementsToCopyrightFindings(copyrightsForLicenses[license]),
		}
		findings = append(findings, finding)
	}

	sortLicenseFindings(findings)
	return findings, nil
}

func locationSetToSlice(set map[TextLocation]struct{}) []TextLocation {
	locations := make([]TextLocation, 0, len(set))
	for location := range set {
		locations = append(locations, location)
	}
	return locations
}

func statementsToCopyrightFindings(statements map[string]map[TextLocation]struct{}) []CopyrightFindings {
	copyrights := make([]CopyrightFindings, 0, len(statements))
	for statement, locations := range statements {
		copyrights = append(copyrights, CopyrightFindings{
			Statement: statement,
			Locations: locationSetToSlice(locations),
		})
	}
	return copyrights
}
