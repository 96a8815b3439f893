package breakdown

func hours(h float64) *float64 { return &h }

// Fallback returns the fixed four-phase breakdown used when the model's
// output cannot be trusted. Every call returns a fresh copy with identical
// content, so two degraded analyses are byte-for-byte the same.
func Fallback() *Breakdown {
	return &Breakdown{
		Activities: []Activity{
			{
				Title:       "Analyse et conception",
				Description: "Cadrer le besoin, les exigences et l'architecture de la solution",
				Tasks: []Task{
					{Title: "Recueillir les besoins", Description: "Entretiens avec les parties prenantes et synthèse des attentes", Priority: "high", EstimatedHours: hours(8)},
					{Title: "Rédiger les spécifications", Description: "Spécifications fonctionnelles et techniques du projet", Priority: "high", EstimatedHours: hours(12)},
					{Title: "Concevoir l'architecture", Description: "Choix techniques, découpage en modules et schéma de données", Priority: "medium", EstimatedHours: hours(10)},
					{Title: "Planifier les jalons", Description: "Découpage du projet en lots et estimation des charges", Priority: "medium", EstimatedHours: hours(4)},
				},
			},
			{
				Title:       "Développement",
				Description: "Réaliser les fonctionnalités définies dans les spécifications",
				Tasks: []Task{
					{Title: "Mettre en place l'environnement", Description: "Outillage, dépôts et chaîne d'intégration continue", Priority: "high", EstimatedHours: hours(6)},
					{Title: "Développer les fonctionnalités principales", Description: "Implémentation du cœur fonctionnel", Priority: "high", EstimatedHours: hours(20)},
					{Title: "Développer les fonctionnalités secondaires", Description: "Implémentation des compléments et des écrans annexes", Priority: "medium", EstimatedHours: hours(16)},
					{Title: "Revue de code", Description: "Relecture croisée et corrections", Priority: "low", EstimatedHours: hours(6)},
				},
			},
			{
				Title:       "Tests et qualité",
				Description: "Vérifier la conformité et la robustesse de la solution",
				Tasks: []Task{
					{Title: "Écrire les tests unitaires", Description: "Couverture des composants critiques", Priority: "high", EstimatedHours: hours(10)},
					{Title: "Exécuter les tests d'intégration", Description: "Vérification du comportement bout en bout", Priority: "medium", EstimatedHours: hours(8)},
					{Title: "Corriger les anomalies", Description: "Traitement des tickets issus des campagnes de test", Priority: "medium", EstimatedHours: hours(12)},
					{Title: "Valider avec les utilisateurs", Description: "Recette utilisateur et ajustements", Priority: "low", EstimatedHours: hours(6)},
				},
			},
			{
				Title:       "Finalisation et livraison",
				Description: "Préparer la mise en production et le transfert de connaissances",
				Tasks: []Task{
					{Title: "Rédiger la documentation", Description: "Documentation utilisateur et technique", Priority: "medium", EstimatedHours: hours(8)},
					{Title: "Préparer le déploiement", Description: "Scripts, configuration et plan de retour arrière", Priority: "high", EstimatedHours: hours(6)},
					{Title: "Déployer en production", Description: "Mise en production et vérifications post-déploiement", Priority: "high", EstimatedHours: hours(4)},
					{Title: "Former les utilisateurs", Description: "Sessions de prise en main et support initial", Priority: "low", EstimatedHours: hours(6)},
				},
			},
		},
	}
}
