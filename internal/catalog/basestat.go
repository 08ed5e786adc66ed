package catalog

import "github.com/albapepper/pokedata/internal/numparse"

// Column names of the provisioned base-stat table.
const (
	ColNo        = "No."
	ColForm      = "form"
	ColHP        = "HP"
	ColAttack    = "攻撃"
	ColDefense   = "防御"
	ColSpAttack  = "特攻"
	ColSpDefense = "特防"
	ColSpeed     = "素早"
	ColTotal     = "合計"
)

// BaseStat is the six base stats plus their total, as written in the
// table. A zero BaseStat encodes as {}.
type BaseStat struct {
	H     *string `json:"H,omitempty"`
	A     *string `json:"A,omitempty"`
	B     *string `json:"B,omitempty"`
	C     *string `json:"C,omitempty"`
	D     *string `json:"D,omitempty"`
	S     *string `json:"S,omitempty"`
	Total *string `json:"合計,omitempty"`
}

// IsZero reports whether no stat is set.
func (b BaseStat) IsZero() bool {
	return b == BaseStat{}
}

func projectBaseStat(row Row) BaseStat {
	return BaseStat{
		H:     column(row, ColHP),
		A:     column(row, ColAttack),
		B:     column(row, ColDefense),
		C:     column(row, ColSpAttack),
		D:     column(row, ColSpDefense),
		S:     column(row, ColSpeed),
		Total: column(row, ColTotal),
	}
}

func column(row Row, name string) *string {
	v, ok := row[name]
	if !ok {
		return nil
	}
	return &v
}

type statKey struct {
	id   int
	form int
}

// rowKey parses the No. and form columns of row.
func rowKey(row Row) (statKey, bool) {
	id, ok := numparse.LeadingInt(row[ColNo])
	if !ok {
		return statKey{}, false
	}
	form, ok := numparse.LeadingInt(row[ColForm])
	if !ok {
		return statKey{}, false
	}
	return statKey{id: id, form: form}, true
}

// indexBaseStats keys rows by (No., form). The first row for a key wins.
func indexBaseStats(rows []Row) map[statKey]BaseStat {
	index := make(map[statKey]BaseStat, len(rows))
	for _, row := range rows {
		k, ok := rowKey(row)
		if !ok {
			continue
		}
		if _, dup := index[k]; dup {
			continue
		}
		index[k] = projectBaseStat(row)
	}
	return index
}

// LookupBaseStat scans rows in order and returns the stats of the first
// row matching id and form, or an empty BaseStat.
func LookupBaseStat(rows []Row, id, form int) BaseStat {
	for _, row := range rows {
		k, ok := rowKey(row)
		if ok && k.id == id && k.form == form {
			return projectBaseStat(row)
		}
	}
	return BaseStat{}
}
