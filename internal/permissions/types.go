package permissions

// Decision is an IAM policy evaluation decision
type Decision string

const (
	// DecisionAllowed means the principal's policies allow the action
	DecisionAllowed Decision = "allowed"

	// DecisionImplicitDeny means no policy allows the action
	DecisionImplicitDeny Decision = "implicitDeny"

	// DecisionExplicitDeny means a policy explicitly denies the action
	DecisionExplicitDeny Decision = "explicitDeny"
)

// Allowed returns true for an allow decision
func (d Decision) Allowed() bool {
	return d == DecisionAllowed
}

// RequiredPermission is one entry of the externally supplied permission
// table: a set of actions evaluated against a resource.
type RequiredPermission struct {
	Actions  []string `yaml:"actions" validate:"required,min=1,dive,required"`
	Resource string   `yaml:"resource" validate:"required"`
}

// Result is a single simulation outcome, one per evaluated action. Results
// are never mutated after creation.
type Result struct {
	// Name is the evaluated action name
	Name string

	// Decision is the evaluation outcome
	Decision Decision
}
