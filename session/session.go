package session

import (
	"fmt"
	"os"

	"github.com/masqdata/masq/colsel"
	"github.com/masqdata/masq/eval"
	"github.com/masqdata/masq/expr"
	"github.com/masqdata/masq/flags"
	"github.com/masqdata/masq/store"
	"github.com/masqdata/masq/tab"
)

// Handler serves one connected session, typically by running a
// statement loop until the peer disconnects.
type Handler func(ses *Session)

// Session is the state behind one console or ssh connection: the
// ambient scope built up by let statements, the current dataset, and
// the dataset store shared by all sessions.
type Session struct {
	User string
	Type string
	Addr string

	st    *store.Store
	flgs  flags.Flags
	scope tab.Scope
	nam   string
	ds    *tab.Dataset
	sesid uint64
}

func NewSession(st *store.Store) *Session {
	return &Session{
		st:    st,
		flgs:  flags.Default(),
		scope: tab.EmptyScope(),
	}
}

func (ses *Session) SetFlags(flgs flags.Flags) {
	ses.flgs = flgs
}

func (ses *Session) SetSessionID(sesid uint64) {
	ses.sesid = sesid
}

func (ses *Session) String() string {
	return fmt.Sprintf("session-%d", ses.sesid)
}

func (ses *Session) Scope() tab.Scope {
	return ses.scope
}

// Dataset returns the current dataset and its name; the dataset is nil
// until a load or use statement.
func (ses *Session) Dataset() (*tab.Dataset, string) {
	return ses.ds, ses.nam
}

func (ses *Session) SetDataset(nam string, ds *tab.Dataset) {
	ses.nam = nam
	ses.ds = ds
}

func (ses *Session) currentDataset() (*tab.Dataset, error) {
	if ses.ds == nil {
		return nil, fmt.Errorf("session: no current dataset; load or use one first")
	}
	return ses.ds, nil
}

// Let evaluates an expression column-wise and binds the result in the
// session scope.
func (ses *Session) Let(nam string, e expr.Expr) (tab.Value, error) {
	val, err := eval.Evaluate(e, ses.ds, ses.scope)
	if err != nil {
		return nil, err
	}
	ses.scope = ses.scope.With(nam, val)
	return val, nil
}

// Filter replaces the current dataset with the rows satisfying pred.
func (ses *Session) Filter(pred expr.Expr) (int, error) {
	ds, err := ses.currentDataset()
	if err != nil {
		return 0, err
	}

	fds, err := eval.FilterRows(pred, ds, ses.scope)
	if err != nil {
		return 0, err
	}
	ses.ds = fds
	return fds.NumRows(), nil
}

func (ses *Session) Eval(e expr.Expr) (tab.Value, error) {
	return eval.Evaluate(e, ses.ds, ses.scope)
}

// Select projects the current dataset to the named columns. Lenient
// selection drops names the dataset does not have instead of failing;
// the strict_select flag controls whether a plain select is strict.
func (ses *Session) Select(names []string, lenient bool) error {
	ds, err := ses.currentDataset()
	if err != nil {
		return err
	}

	strict := !lenient && ses.flgs.GetFlag(flags.StrictSelect)
	pds, err := colsel.Project(colsel.Names{Names: names, Strict: strict}, ds)
	if err != nil {
		return err
	}
	ses.ds = pds
	return nil
}

// Load reads a CSV file and makes it the current dataset.
func (ses *Session) Load(path, nam string) (*tab.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("session: %s", err)
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, err
	}
	ses.nam = nam
	ses.ds = ds
	return ds, nil
}

// Save writes the current dataset to the store under its name.
func (ses *Session) Save() error {
	ds, err := ses.currentDataset()
	if err != nil {
		return err
	}
	if ses.st == nil {
		return fmt.Errorf("session: no dataset store")
	}
	return ses.st.Put(ses.nam, ds)
}

// SaveFile writes the current dataset to a CSV file.
func (ses *Session) SaveFile(path string) error {
	ds, err := ses.currentDataset()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("session: %s", err)
	}
	err = WriteCSV(f, ds)
	cerr := f.Close()
	if err != nil {
		return err
	}
	if cerr != nil {
		return fmt.Errorf("session: %s", cerr)
	}
	return nil
}

// Use makes a stored dataset the current dataset.
func (ses *Session) Use(nam string) (*tab.Dataset, error) {
	if ses.st == nil {
		return nil, fmt.Errorf("session: no dataset store")
	}
	ds, err := ses.st.Get(nam)
	if err != nil {
		return nil, err
	}
	ses.nam = nam
	ses.ds = ds
	return ds, nil
}

func (ses *Session) Datasets() ([]string, error) {
	if ses.st == nil {
		return nil, fmt.Errorf("session: no dataset store")
	}
	return ses.st.List()
}
