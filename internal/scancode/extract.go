package scancode

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ScannerName is the name of the external tool as used in scanner details and
// synthetic license identifiers.
const ScannerName = "ScanCode"

// licenseFindings extracts all license findings from files[*].licenses.
func licenseFindings(result gjson.Result) []LicenseFinding {
	var findings []LicenseFinding

	result.Get("files").ForEach(func(_, file gjson.Result) bool {
		path := file.Get("path").String()
		file.Get("licenses").ForEach(func(_, entry gjson.Result) bool {
			findings = append(findings, LicenseFinding{
				License: licenseID(entry),
				Location: TextLocation{
					Path:      path,
					StartLine: int(entry.Get("start_line").Int()),
					EndLine:   int(entry.Get("end_line").Int()),
				},
			})
			return true
		})
		return true
	})

	return findings
}

// licenseID maps a raw license entry to its identifier: the SPDX key when the
// tool supplied one, NOASSERTION for unknowns, and a synthetic LicenseRef
// otherwise.
func licenseID(entry gjson.Result) string {
	if spdx := entry.Get("spdx_license_key").String(); spdx != "" {
		return spdx
	}

	key := entry.Get("key").String()
	if key == "unknown" {
		return "NOASSERTION"
	}

	return fmt.Sprintf("LicenseRef-%s-%s", strings.ToLower(ScannerName), key)
}

// copyrightFindings extracts all copyright findings from files[*].copyrights.
// Newer tool versions report a "statements" array per entry, older ones a
// single "value"; both shapes are accepted.
func copyrightFindings(result gjson.Result) []CopyrightFinding {
	var findings []CopyrightFinding

	result.Get("files").ForEach(func(_, file gjson.Result) bool {
		path := file.Get("path").String()
		file.Get("copyrights").ForEach(func(_, entry gjson.Result) bool {
			location := TextLocation{
				Path:      path,
				StartLine: int(entry.Get("start_line").Int()),
				EndLine:   int(entry.Get("end_line").Int()),
			}

			if statements := entry.Get("statements"); statements.Exists() {
				statements.ForEach(func(_, statement gjson.Result) bool {
					findings = append(findings, CopyrightFinding{
						Statement: statement.String(),
						Location:  location,
					})
					return true
				})
			} else {
				findings = append(findings, CopyrightFinding{
					Statement: entry.Get("value").String(),
					Location:  location,
				})
			}
			return true
		})
		return true
	})

	return findings
}

// fileCount reads the number of scanned files as reported by the tool. Newer
// versions report it in headers[*].extra_data.files_count, older ones at the
// top level. The count is never derived from the findings.
func fileCount(result gjson.Result) (int, error) {
	count := -1
	result.Get("headers").ForEach(func(_, header gjson.Result) bool {
		if filesCount := header.Get("extra_data.files_count"); filesCount.Exists() {
			count = int(filesCount.Int())
			return false
		}
		return true
	})
	if count >= 0 {
		return count, nil
	}

	if filesCount := result.Get("files_count"); filesCount.Exists() {
		return int(filesCount.Int()), nil
	}

	// The empty tree sentinel reports no files at all.
	if len(result.Map()) == 0 {
		return 0, nil
	}

	return 0, fmt.Errorf("result is missing the file count")
}
