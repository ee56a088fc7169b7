package engine

// Model is a small boolean/integer constraint model in the CP-SAT mold:
// boolean decision variables, derived integer variables, linear constraints
// over them, and a linear objective to minimize.

// VarKind distinguishes decision variables from auxiliary penalty/count
// variables so the extractor can tell which ones represent assignments.
type VarKind int

const (
	KindDecision VarKind = iota
	KindAuxiliary
)

// BoolVar is a 0/1 decision or auxiliary variable.
type BoolVar struct {
	Index         int
	Kind          VarKind
	Fixed         bool // true once forced to a constant value by a hard rule
	Value         int  // the fixed value, meaningful only when Fixed
	Name          string
	PenaltyWeight int // weight registered via AddPenalty, 0 if none
}

// IntVar is a bounded integer auxiliary variable (daily counts, abs-diffs).
type IntVar struct {
	Index int
	Low   int
	High  int
	Name  string
}

// ConstraintOp is the comparison a LinearConstraint enforces.
type ConstraintOp int

const (
	OpLessEqual ConstraintOp = iota
	OpEqual
)

// LinearConstraint enforces Σ(coef[i] * var[i]) Op RHS.
type LinearConstraint struct {
	Terms []Term
	Op    ConstraintOp
	RHS   int
}

// Term pairs a boolean variable index with an integer coefficient.
type Term struct {
	VarIndex int
	Coef     int
}

// ObjectiveTerm is one weighted penalty contribution to the objective. It
// refers to either a boolean variable (VarIndex ≥ 0, IntVarIndex = -1) or an
// integer variable (IntVarIndex ≥ 0, VarIndex = -1).
type ObjectiveTerm struct {
	VarIndex    int
	IntVarIndex int
	Weight      int
}

// Model is the shared, mutable constraint model the hard and soft compilers
// write into and the solver reads from.
type Model struct {
	BoolVars    []*BoolVar
	IntVars     []*IntVar
	Constraints []LinearConstraint
	Objective   []ObjectiveTerm
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar allocates and registers a new boolean variable.
func (m *Model) NewBoolVar(kind VarKind, name string) *BoolVar {
	v := &BoolVar{Index: len(m.BoolVars), Kind: kind, Name: name}
	m.BoolVars = append(m.BoolVars, v)
	return v
}

// NewIntVar allocates and registers a new bounded integer variable.
func (m *Model) NewIntVar(low, high int, name string) *IntVar {
	v := &IntVar{Index: len(m.IntVars), Low: low, High: high, Name: name}
	m.IntVars = append(m.IntVars, v)
	return v
}

// Fix forces a boolean variable to a constant value; compilers call this
// instead of emitting an equality constraint for simple fix-to-zero rules.
func (m *Model) Fix(v *BoolVar, value int) {
	v.Fixed = true
	v.Value = value
}

// AddAtMostOne adds Σ vars ≤ 1.
func (m *Model) AddAtMostOne(vars []*BoolVar) {
	if len(vars) == 0 {
		return
	}
	m.addSum(vars, OpLessEqual, 1)
}

// AddExactlyOne adds Σ vars = 1.
func (m *Model) AddExactlyOne(vars []*BoolVar) {
	m.addSum(vars, OpEqual, 1)
}

func (m *Model) addSum(vars []*BoolVar, op ConstraintOp, rhs int) {
	terms := make([]Term, 0, len(vars))
	for _, v := range vars {
		terms = append(terms, Term{VarIndex: v.Index, Coef: 1})
	}
	m.Constraints = append(m.Constraints, LinearConstraint{Terms: terms, Op: op, RHS: rhs})
}

// AddPenalty records a weighted penalty term in the objective. weight is the
// already-scaled weight (rule weight × the rule's fixed scale factor).
func (m *Model) AddPenalty(v *BoolVar, weight int) {
	if weight <= 0 {
		return
	}
	m.Objective = append(m.Objective, ObjectiveTerm{VarIndex: v.Index, IntVarIndex: -1, Weight: weight})
	v.PenaltyWeight += weight
}

// NumVariables returns the number of boolean decision variables, used for
// diagnostics and metrics (solver_model_variables).
func (m *Model) NumVariables() int {
	n := 0
	for _, v := range m.BoolVars {
		if v.Kind == KindDecision {
			n++
		}
	}
	return n
}

// NumConstraints returns the number of emitted linear constraints.
func (m *Model) NumConstraints() int {
	return len(m.Constraints)
}

// TotalPenaltyWeight sums every emitted penalty's weight, the denominator of
// the normalized fitness score.
func (m *Model) TotalPenaltyWeight() int {
	total := 0
	for _, t := range m.Objective {
		total += t.Weight
	}
	return total
}
