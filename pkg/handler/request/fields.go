package request

// Form fields read by the analysis endpoints
const (
	SequenceField = "sequence"
	TableField    = "table"
)

type Operation int

const (
	OperationTranslate Operation = iota
	OperationGCContent
	OperationCodonUsage
	OperationVisualizeGC
	OperationUnknown
)

func (op Operation) String() string {
	switch op {
	case OperationTranslate:
		return "translate"
	case OperationGCContent:
		return "gc_content"
	case OperationCodonUsage:
		return "codon_usage"
	case OperationVisualizeGC:
		return "visualize_gc"
	default:
		return "unknown"
	}
}

// Path is the route the operation is served on.
func (op Operation) Path() string {
	return "/" + op.String()
}
