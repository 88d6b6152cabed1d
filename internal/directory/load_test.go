package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brian/letter-agent/internal/types"
)

const directoryJSON = `{
  "federal": {
    "senate": [
      {
        "id": "lankford",
        "full_name": "Senator James Lankford",
        "name": "James Lankford",
        "offices": {
          "dc": {"name": "Washington DC Office", "street_1": "316 Hart Senate Office Building", "city": "Washington", "state": "DC", "zip": "20510"},
          "okc": {"name": "Oklahoma City Office", "street_1": "1015 N Broadway Ave", "city": "Oklahoma City", "state": "OK", "zip": "73102"}
        }
      },
      {
        "id": "mullin",
        "full_name": "Senator Markwayne Mullin",
        "name": "Markwayne Mullin",
        "offices": {
          "dc": {"street_1": "330 Hart Senate Office Building", "city": "Washington", "state": "DC", "zip": "20510"}
        }
      }
    ],
    "house": [
      {
        "id": "bice",
        "full_name": "Congresswoman Stephanie Bice",
        "name": "Stephanie Bice",
        "district": "OK-5",
        "offices": {
          "dc": {"street_1": "2437 Rayburn House Office Building", "city": "Washington", "state": "DC", "zip": "20515"}
        }
      }
    ]
  },
  "state": {
    "executive": {
      "governor": {
        "id": "stitt",
        "full_name": "Governor Kevin Stitt",
        "name": "Kevin Stitt",
        "offices": {
          "capitol": {"street_1": "2300 N Lincoln Blvd, Suite 212", "city": "Oklahoma City", "state": "OK", "zip": "73105"}
        }
      }
    },
    "senate": [
      {
        "id": "kirt",
        "full_name": "Senator Julia Kirt",
        "name": "Julia Kirt",
        "district": "SD-30",
        "offices": {
          "capitol": {"street_1": "2300 N Lincoln Blvd", "city": "Oklahoma City", "state": "OK", "zip": "73105"}
        }
      }
    ],
    "house": [
      {
        "id": "munson",
        "full_name": "Representative Cyndi Munson",
        "name": "Cyndi Munson",
        "offices": {}
      }
    ]
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipients.json", directoryJSON)

	officials, warnings, err := LoadJSON(path)
	require.NoError(t, err)

	// Governor first, then federal senate, federal house, state senate.
	// Munson is dropped for having no offices.
	require.Len(t, officials, 5)
	assert.Equal(t, "stitt", officials[0].ID)
	assert.Equal(t, "lankford", officials[1].ID)
	assert.Equal(t, "mullin", officials[2].ID)
	assert.Equal(t, "bice", officials[3].ID)
	assert.Equal(t, "kirt", officials[4].ID)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Cyndi Munson")

	// Chamber hints resolved the bare Senator titles.
	assert.Equal(t, types.CategoryUSSenator, officials[1].Category)
	assert.Equal(t, types.CategoryStateSen, officials[4].Category)

	// Missing fields are derived.
	governor := officials[0]
	assert.Equal(t, "The Honorable", governor.Honorific)
	assert.Equal(t, "Governor", governor.Title)
	assert.Equal(t, "Office of the Governor", governor.Organization)
}

func TestLoadJSONDefaultOffice(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipients.json", directoryJSON)

	officials, _, err := LoadJSON(path)
	require.NoError(t, err)

	lankford := officials[1]
	require.Len(t, lankford.Offices, 2)
	dc, ok := lankford.DefaultOffice()
	require.True(t, ok)
	assert.Equal(t, "DC", dc.State)

	// Single default even for officials with one non-DC office.
	governor := officials[0]
	capitol, ok := governor.DefaultOffice()
	require.True(t, ok)
	assert.Equal(t, "OK", capitol.State)
}

func TestLoadJSONMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipients.json", "{not json")

	_, _, err := LoadJSON(path)
	require.Error(t, err)
	var dirErr *DirectoryError
	assert.ErrorAs(t, err, &dirErr)
}

const directoryCSV = `name_text,address1_text,City,state_text,zip_text,chamber
Governor Kevin Stitt,"2300 N Lincoln Blvd, Suite 212",Oklahoma City,OK,73105,
Senator James Lankford,316 Hart Senate Office Building,Washington,DC,20510,federal
Senator Julia Kirt,2300 N Lincoln Blvd,Oklahoma City,OK,73105,state
Dr. Jane Smith,12 Main St,Tulsa,OK,74103,
`

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipients.csv", directoryCSV)

	officials, warnings, err := LoadCSV(path)
	require.NoError(t, err)

	require.Len(t, officials, 3)
	assert.Equal(t, types.CategoryGovernor, officials[0].Category)
	assert.Equal(t, types.CategoryUSSenator, officials[1].Category)
	assert.Equal(t, types.CategoryStateSen, officials[2].Category)

	assert.Equal(t, "James Lankford", officials[1].Name)
	assert.Equal(t, "senator_james_lankford", officials[1].ID)

	require.Len(t, officials[1].Offices, 1)
	assert.True(t, officials[1].Offices[0].IsDefault)
	assert.Equal(t, "20510", officials[1].Offices[0].Zip)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Jane Smith")
}

func TestLoadCSVMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipients.csv", "name_text,City\nGovernor Kevin Stitt,Oklahoma City\n")

	_, _, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address1_text")
}

func TestLoadFallsBackToCSV(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "missing.json")
	csvPath := writeFile(t, dir, "recipients.csv", directoryCSV)

	officials, _, err := Load(jsonPath, csvPath)
	require.NoError(t, err)
	assert.Len(t, officials, 3)
}

func TestLoadBothMissing(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(filepath.Join(dir, "a.json"), filepath.Join(dir, "b.csv"))
	require.Error(t, err)
	var dirErr *DirectoryError
	require.ErrorAs(t, err, &dirErr)
	assert.Contains(t, dirErr.Message, "no directory source")
}

func TestLoadBadJSONFallsBackToCSV(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "recipients.json", "{broken")
	csvPath := writeFile(t, dir, "recipients.csv", directoryCSV)

	officials, warnings, err := Load(jsonPath, csvPath)
	require.NoError(t, err)
	assert.Len(t, officials, 3)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "unusable")
}
