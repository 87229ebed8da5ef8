package storage

// Виды открытых перечислений ("Autres..." в формах)
const (
	OptionProblemDescription = "problem_description"
	OptionWorkstation        = "workstation"
)

var OptionKinds = []string{OptionProblemDescription, OptionWorkstation}

func IsOptionKind(kind string) bool {
	for _, k := range OptionKinds {
		if k == kind {
			return true
		}
	}
	return false
}
