package constants

var (
	// Типовые неисправности: P.M.I - механика, P.E.I - электрика
	InitialProblemDescriptions = []string{
		"P.M.I.01-Panne au niveau du capos",
		"P.M.I.02-problème d'éjecteur de moule",
		"P.M.I.03-Blocage moule",
		"P.M.I.04-Problème de tiroir",
		"P.M.I.05-Cassure vis sortie plaque carotte",
		"P.M.I.06-Blocage de la plaque carotte",
		"P.M.I.07-Vis de noyaux endommagé",
		"P.M.I.08-Problème noyau",
		"P.M.I.09-Problème vis d'injection",
		"P.M.I.10-Réducteur",
		"P.M.I.11-Roue dentée",
		"P.M.I.12-PB grenouillère",
		"P.M.I.13-Vis de pied endommagé",
		"P.M.I.14-Colonnes de guidage",
		"P.M.I.15-Fuite matière au niveau de la buse d'injection",
		"P.E.I.01-PB capteur",
		"P.E.I.02-PB galet (fin de course)",
		"P.E.I.03-PB moteur électrique",
		"P.E.I.04-Capteur linéaire",
		"P.E.I.05-Armoire électrique",
		"P.E.I.06-Écran/tactile",
		"P.E.I.07-Machine s'allume pas",
		"P.E.I.08-PB d'électrovanne",
		"P.E.I.09-PB connecteur",
		"P.E.I.10-Système magnétique",
	}

	// Посты (postes de charge)
	InitialWorkstations = []string{
		"ASL011",
		"ASL021",
		"ASL031",
		"ASL041",
		"ASL051",
		"ASL061",
		"ASL071",
	}
)
