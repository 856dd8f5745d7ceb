package dnd

import "testing"

func TestCanDropDocumentIntoFolder(t *testing.T) {
	testCases := []struct {
		name     string
		payload  SourceData
		locID    int64
		folder   string
		expected bool
	}{
		{
			name:     "ancestor move allowed",
			payload:  SourceData{Kind: SourceDocument, LocationID: 1, RelPath: "archive/2026/file.md"},
			locID:    1,
			folder:   "archive",
			expected: true,
		},
		{
			name:     "same-folder no-op rejected",
			payload:  SourceData{Kind: SourceDocument, LocationID: 1, RelPath: "archive/file.md"},
			locID:    1,
			folder:   "archive",
			expected: false,
		},
		{
			name:     "root document into root rejected",
			payload:  SourceData{Kind: SourceDocument, LocationID: 1, RelPath: "file.md"},
			locID:    1,
			folder:   "",
			expected: false,
		},
		{
			name:     "root document into folder allowed",
			payload:  SourceData{Kind: SourceDocument, LocationID: 1, RelPath: "file.md"},
			locID:    1,
			folder:   "archive",
			expected: true,
		},
		{
			name:     "cross-location always allowed",
			payload:  SourceData{Kind: SourceDocument, LocationID: 1, RelPath: "archive/file.md"},
			locID:    2,
			folder:   "archive",
			expected: true,
		},
		{
			name:     "folder payload rejected",
			payload:  SourceData{Kind: SourceFolder, LocationID: 1, RelPath: "archive"},
			locID:    2,
			folder:   "",
			expected: false,
		},
		{
			name:     "tab payload rejected",
			payload:  SourceData{Kind: SourceTab, LocationID: 1, RelPath: "a.md"},
			locID:    1,
			folder:   "b",
			expected: false,
		},
	}

	for _, tc := range testCases {
		result := CanDropDocumentIntoFolder(tc.payload, tc.locID, tc.folder)
		if result != tc.expected {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, result)
		}
	}
}

func TestCanDropFolderIntoFolder(t *testing.T) {
	testCases := []struct {
		name     string
		payload  SourceData
		locID    int64
		folder   string
		expected bool
	}{
		{
			name:     "descendant trap rejected",
			payload:  SourceData{Kind: SourceFolder, LocationID: 1, RelPath: "samples"},
			locID:    1,
			folder:   "samples/inner",
			expected: false,
		},
		{
			name:     "onto itself rejected",
			payload:  SourceData{Kind: SourceFolder, LocationID: 1, RelPath: "samples"},
			locID:    1,
			folder:   "samples",
			expected: false,
		},
		{
			name:     "sibling folder allowed",
			payload:  SourceData{Kind: SourceFolder, LocationID: 1, RelPath: "samples"},
			locID:    1,
			folder:   "archive",
			expected: true,
		},
		{
			name:     "prefix but not descendant allowed",
			payload:  SourceData{Kind: SourceFolder, LocationID: 1, RelPath: "samples"},
			locID:    1,
			folder:   "samples-old",
			expected: true,
		},
		{
			name:     "same rel_path in another location allowed",
			payload:  SourceData{Kind: SourceFolder, LocationID: 1, RelPath: "samples"},
			locID:    2,
			folder:   "samples",
			expected: true,
		},
		{
			name:     "descendant path in another location allowed",
			payload:  SourceData{Kind: SourceFolder, LocationID: 1, RelPath: "samples"},
			locID:    2,
			folder:   "samples/inner",
			expected: true,
		},
		{
			name:     "document payload rejected",
			payload:  SourceData{Kind: SourceDocument, LocationID: 1, RelPath: "samples/file.md"},
			locID:    1,
			folder:   "archive",
			expected: false,
		},
	}

	for _, tc := range testCases {
		result := CanDropFolderIntoFolder(tc.payload, tc.locID, tc.folder)
		if result != tc.expected {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, result)
		}
	}
}
