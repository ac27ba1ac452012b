package authorization

const (
	ObjectEstate            = "estate"
	ObjectUnit              = "unit"
	ObjectFee               = "fee"
	ObjectPayment           = "payment"
	ObjectMaintenanceTicket = "maintenance_ticket"
	ObjectAnnouncement      = "announcement"
	ObjectReport            = "report"
)

const (
	VerbView   = "view"
	VerbCreate = "create"
	VerbUpdate = "update"
	VerbDelete = "delete"

	VerbFeePaymentStatus = "fee_payment_status"
	VerbEstateSummary    = "estate_summary"
	VerbOverallSummary   = "overall_summary"
)

// Action is an (object, verb) pair checked against the role policy.
type Action struct {
	Object string
	Verb   string
}

func View(object string) Action   { return Action{Object: object, Verb: VerbView} }
func Create(object string) Action { return Action{Object: object, Verb: VerbCreate} }
func Update(object string) Action { return Action{Object: object, Verb: VerbUpdate} }
func Delete(object string) Action { return Action{Object: object, Verb: VerbDelete} }

func Report(verb string) Action { return Action{Object: ObjectReport, Verb: verb} }

func (a Action) String() string {
	return a.Object + "." + a.Verb
}

const (
	subjectSuperAdmin    = "role:super_admin"
	subjectEstateManager = "role:estate_manager"
)

var crudObjects = []string{
	ObjectUnit,
	ObjectFee,
	ObjectPayment,
	ObjectMaintenanceTicket,
	ObjectAnnouncement,
}

func defaultPolicies() [][]string {
	verbs := []string{VerbView, VerbCreate, VerbUpdate, VerbDelete}
	policies := make([][]string, 0, 64)

	for _, verb := range verbs {
		policies = append(policies, []string{subjectSuperAdmin, ObjectEstate, verb})
	}
	// Managers see and edit their own estate but never create or remove estates.
	policies = append(policies,
		[]string{subjectEstateManager, ObjectEstate, VerbView},
		[]string{subjectEstateManager, ObjectEstate, VerbUpdate},
	)

	for _, object := range crudObjects {
		for _, verb := range verbs {
			policies = append(policies,
				[]string{subjectSuperAdmin, object, verb},
				[]string{subjectEstateManager, object, verb},
			)
		}
	}

	policies = append(policies,
		[]string{subjectSuperAdmin, ObjectReport, VerbFeePaymentStatus},
		[]string{subjectSuperAdmin, ObjectReport, VerbEstateSummary},
		[]string{subjectSuperAdmin, ObjectReport, VerbOverallSummary},
		[]string{subjectEstateManager, ObjectReport, VerbFeePaymentStatus},
		[]string{subjectEstateManager, ObjectReport, VerbEstateSummary},
	)
	return policies
}
