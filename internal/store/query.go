package store

// Op is a filter operator.
type Op string

const (
	// OpEq matches exact values; array columns compare element-wise.
	OpEq Op = "eq"
	// OpIn matches columns whose value is one of a list.
	OpIn Op = "in"
	// OpContains matches array columns holding every listed value.
	OpContains Op = "cs"
	// OpILike matches text columns against a case-insensitive LIKE pattern.
	OpILike Op = "ilike"
)

// Filter is a (column, operator, value) triple. For OpIn and OpContains Value is a []any.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// In builds a membership filter over values.
func In[T any](column string, values []T) Filter {
	list := make([]any, len(values))
	for i, v := range values {
		list[i] = v
	}
	return Filter{Column: column, Op: OpIn, Value: list}
}

// Contains builds an array containment filter.
func Contains[T any](column string, values ...T) Filter {
	list := make([]any, len(values))
	for i, v := range values {
		list[i] = v
	}
	return Filter{Column: column, Op: OpContains, Value: list}
}

// ILike builds a case-insensitive pattern filter; % and _ are wildcards.
func ILike(column, pattern string) Filter {
	return Filter{Column: column, Op: OpILike, Value: pattern}
}

// Order sorts results by a column.
type Order struct {
	Column     string
	Descending bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Descending: true} }

// Query selects rows. The zero Query selects everything in store order.
type Query struct {
	Filters []Filter
	Order   []Order
	// Limit caps the number of rows; zero means no limit.
	Limit int
}

// Where returns a query with the given filters.
func Where(filters ...Filter) Query {
	return Query{Filters: filters}
}

// OrderBy returns a copy of q sorted by orders.
func (q Query) OrderBy(orders ...Order) Query {
	q.Order = append(append([]Order(nil), q.Order...), orders...)
	return q
}
