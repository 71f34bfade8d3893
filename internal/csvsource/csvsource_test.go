package csvsource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridview/internal/domain"
)

func TestLoadReaderBasic(t *testing.T) {
	input := "name,age,joined\nalice,30,2019-07-14\nbob,25,2021-03-01\n"

	ds, cols, err := LoadReader(strings.NewReader(input), "people.csv", Options{})
	require.NoError(t, err)

	assert.Equal(t, "people.csv", ds.Name)
	require.Equal(t, 2, ds.Len())
	require.Len(t, cols, 3)
	assert.Equal(t, []string{"name", "age", "joined"}, []string{cols[0].ID, cols[1].ID, cols[2].ID})

	assert.Equal(t, "alice", ds.Records[0].Get("name").Raw)
	assert.Equal(t, float64(25), ds.Records[1].Get("age").Num)
}

func TestTypeInference(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind domain.FieldKind
	}{
		{"integer", "42", domain.KindNumber},
		{"float", "3.14", domain.KindNumber},
		{"negative", "-7", domain.KindNumber},
		{"scientific", "1e6", domain.KindNumber},
		{"iso date", "2021-03-01", domain.KindDate},
		{"slash date", "2021/03/01", domain.KindDate},
		{"us date", "03/01/2021", domain.KindDate},
		{"datetime", "2021-03-01 12:30:00", domain.KindDate},
		{"rfc3339", "2021-03-01T12:30:00Z", domain.KindDate},
		{"text", "hello", domain.KindText},
		{"mixed", "42abc", domain.KindText},
		{"empty", "", domain.KindEmpty},
		{"whitespace", "   ", domain.KindEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, Infer(tt.raw).Kind)
		})
	}
}

func TestInferKeepsRawText(t *testing.T) {
	v := Infer("07")
	assert.Equal(t, domain.KindNumber, v.Kind)
	assert.Equal(t, "07", v.Raw)
	assert.Equal(t, float64(7), v.Num)

	d := Infer("2021-03-01")
	assert.Equal(t, "2021-03-01", d.Raw)
	assert.Equal(t, time.March, d.Date.Month())
}

func TestRaggedRowsGetEmptyValues(t *testing.T) {
	input := "a,b,c\n1,2,3\n4,5\n6\n"

	ds, _, err := LoadReader(strings.NewReader(input), "ragged.csv", Options{})
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	assert.Equal(t, domain.KindNumber, ds.Records[0].Get("c").Kind)
	assert.Equal(t, domain.KindEmpty, ds.Records[1].Get("c").Kind)
	assert.Equal(t, domain.KindEmpty, ds.Records[2].Get("b").Kind)
}

func TestDuplicateAndBlankHeaders(t *testing.T) {
	input := "id,id,,name\n1,2,3,x\n"

	ds, cols, err := LoadReader(strings.NewReader(input), "dup.csv", Options{})
	require.NoError(t, err)
	require.Len(t, cols, 4)

	assert.Equal(t, "id", cols[0].ID)
	assert.Equal(t, "id_2", cols[1].ID)
	assert.Equal(t, "column_3", cols[2].ID)
	assert.Equal(t, "name", cols[3].ID)

	// titles keep the original header text
	assert.Equal(t, "id", cols[1].Title)

	assert.Equal(t, float64(2), ds.Records[0].Get("id_2").Num)
	assert.Equal(t, float64(3), ds.Records[0].Get("column_3").Num)
}

func TestDuplicateHeaderCollidingWithExistingSuffix(t *testing.T) {
	// "a_2" is already a real header, so the second "a" must skip past it
	input := "a,a_2,a\n1,2,3\n"

	ds, cols, err := LoadReader(strings.NewReader(input), "collide.csv", Options{})
	require.NoError(t, err)
	require.Len(t, cols, 3)

	assert.Equal(t, "a", cols[0].ID)
	assert.Equal(t, "a_2", cols[1].ID)
	assert.Equal(t, "a_3", cols[2].ID)

	assert.Equal(t, float64(2), ds.Records[0].Get("a_2").Num)
	assert.Equal(t, float64(3), ds.Records[0].Get("a_3").Num)
}

func TestColumnWidthSeeding(t *testing.T) {
	input := "short,a-much-longer-header\nvalue-wider-than-header,x\n"

	_, cols, err := LoadReader(strings.NewReader(input), "w.csv", Options{MinWidth: 4, MaxWidth: 80})
	require.NoError(t, err)
	require.Len(t, cols, 2)

	// content width + 2 padding
	assert.Equal(t, len("value-wider-than-header")+2, cols[0].Width)
	// header wider than the content
	assert.Equal(t, len("a-much-longer-header")+2, cols[1].Width)
}

func TestColumnWidthClampedToBounds(t *testing.T) {
	long := strings.Repeat("x", 200)
	input := "a,b\n" + long + ",1\n"

	_, cols, err := LoadReader(strings.NewReader(input), "clamp.csv", Options{MinWidth: 6, MaxWidth: 30})
	require.NoError(t, err)

	assert.Equal(t, 30, cols[0].Width)
	assert.Equal(t, 6, cols[1].Width)
	assert.Equal(t, 6, cols[0].MinWidth)
	assert.Equal(t, 30, cols[0].MaxWidth)
	assert.True(t, cols[0].Resizable)
	assert.True(t, cols[0].Sortable)
}

func TestCustomDelimiter(t *testing.T) {
	input := "a\tb\n1\t2\n"

	ds, cols, err := LoadReader(strings.NewReader(input), "tsv", Options{Delimiter: '\t'})
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, float64(2), ds.Records[0].Get("b").Num)
}

func TestEmptyInput(t *testing.T) {
	ds, cols, err := LoadReader(strings.NewReader(""), "empty.csv", Options{})
	require.NoError(t, err)
	assert.Zero(t, ds.Len())
	assert.Empty(t, cols)
}

func TestHeaderOnly(t *testing.T) {
	ds, cols, err := LoadReader(strings.NewReader("a,b\n"), "h.csv", Options{})
	require.NoError(t, err)
	assert.Zero(t, ds.Len())
	require.Len(t, cols, 2)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("n\n1\n2\n"), 0o644))

	ds, cols, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "data.csv", ds.Name)
	assert.Equal(t, 2, ds.Len())
	require.Len(t, cols, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open dataset")
}
