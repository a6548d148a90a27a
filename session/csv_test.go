package session_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/masqdata/masq/session"
	"github.com/masqdata/masq/tab"
	"github.com/masqdata/masq/testutil"
)

func TestReadCSV(t *testing.T) {
	src := `name,score,qty,done
ann,1.5,10,true
bob,,20,false
,2.5,30,
`
	ds, err := session.ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV() failed with %s", err)
	}

	if ds.NumColumns() != 4 || ds.NumRows() != 3 {
		t.Fatalf("ReadCSV() got %d columns and %d rows want 4 and 3",
			ds.NumColumns(), ds.NumRows())
	}

	types := map[string]tab.DataType{
		"name":  tab.StringType,
		"score": tab.FloatType,
		"qty":   tab.IntegerType,
		"done":  tab.BooleanType,
	}
	for nam, dt := range types {
		col, ok := ds.Column(nam)
		if !ok {
			t.Errorf("ReadCSV() missing column %s", nam)
		} else if col.Type != dt {
			t.Errorf("column %s got type %s want %s", nam, col.Type, dt)
		}
	}

	if v, _ := ds.Cell("score", 1); v != nil {
		t.Errorf("Cell(score, 1) got %s want NULL", tab.Format(v))
	}
	if v, _ := ds.Cell("qty", 2); tab.Compare(v, tab.Int64Value(30)) != 0 {
		t.Errorf("Cell(qty, 2) got %s want 30", tab.Format(v))
	}
}

func TestReadCSVFail(t *testing.T) {
	cases := []string{
		"",
		"a,b\n1\n",
	}
	for _, c := range cases {
		_, err := session.ReadCSV(strings.NewReader(c))
		if err == nil {
			t.Errorf("ReadCSV(%q) did not fail", c)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	ds := tab.MustDataset(
		tab.StringColumn("name", "ann", "bob"),
		tab.Column{
			Name:   "score",
			Type:   tab.FloatType,
			Values: []tab.Value{tab.Float64Value(1.5), nil},
		},
	)

	var buf bytes.Buffer
	err := session.WriteCSV(&buf, ds)
	if err != nil {
		t.Fatalf("WriteCSV() failed with %s", err)
	}

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed with %s", err)
	}
	want := [][]string{
		{"name", "score"},
		{"ann", "1.5"},
		{"bob", ""},
	}
	var trc string
	if !testutil.DeepEqual(records, want, &trc) {
		t.Errorf("WriteCSV() got %v want %v: %s", records, want, trc)
	}

	ds2, err := session.ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV() failed with %s", err)
	}
	if ds2.NumColumns() != 2 || ds2.NumRows() != 2 {
		t.Errorf("round trip got %d columns and %d rows want 2 and 2",
			ds2.NumColumns(), ds2.NumRows())
	}
	if v, _ := ds2.Cell("score", 1); v != nil {
		t.Errorf("Cell(score, 1) got %s want NULL", tab.Format(v))
	}
}

func TestSaveFile(t *testing.T) {
	ses := session.NewSession(nil)
	if err := ses.SaveFile("nope.csv"); err == nil {
		t.Error("SaveFile() without a current dataset did not fail")
	}

	ds := tab.MustDataset(
		tab.StringColumn("region", "north", "south"),
		tab.IntColumn("qty", 1, 2),
	)
	ses.SetDataset("sales", ds)

	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := ses.SaveFile(path); err != nil {
		t.Fatalf("SaveFile(%s) failed with %s", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open(%s) failed with %s", path, err)
	}
	defer f.Close()

	ds2, err := session.ReadCSV(f)
	if err != nil {
		t.Fatalf("ReadCSV() failed with %s", err)
	}
	if ds2.NumColumns() != 2 || ds2.NumRows() != 2 {
		t.Errorf("round trip got %d columns and %d rows want 2 and 2",
			ds2.NumColumns(), ds2.NumRows())
	}
	if v, _ := ds2.Cell("qty", 1); tab.Compare(v, tab.Int64Value(2)) != 0 {
		t.Errorf("Cell(qty, 1) got %s want 2", tab.Format(v))
	}
}
