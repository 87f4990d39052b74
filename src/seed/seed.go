// Package seed holds the static content the portal starts with. There is no
// persistence layer; every restart begins from these values.
package seed

import "github.com/alby-numerique/participation/src/types"

// Proposals returns the initial proposal list, newest first.
func Proposals() []types.Proposal {
	return []types.Proposal{
		{
			ID:          "0",
			Title:       "Gouvernance Ouverte et Participative",
			Description: "Mise en place de comptes-rendus complets et transparents du conseil. Tirage au sort d'habitants sur les listes électorales pour participer aux commissions. Invitation d'experts indépendants pour les grands projets.",
			Author:      "Collectif Citoyen",
			Date:        "2024-01-10",
			Votes:       342,
			Category:    types.CategoryOther,
			AIAnalysis: &types.AIAnalysis{
				Impact:        "Renforcement majeur de la démocratie locale et de la transparence.",
				Feasibility:   "Élevée",
				EstimatedCost: "€",
				Tags:          []string{"démocratie", "transparence", "citoyenneté"},
			},
		},
		{
			ID:          "1",
			Title:       "Végétalisation de la Place de l'Eglise",
			Description: "Remplacer le stationnement temporaire par des jardinières et des bancs pour créer un îlot de fraîcheur au centre du village.",
			Author:      "Marie D.",
			Date:        "2023-10-15",
			Votes:       124,
			Category:    types.CategoryEnvironment,
			AIAnalysis: &types.AIAnalysis{
				Impact:        "Embellissement du patrimoine historique et réduction des îlots de chaleur.",
				Feasibility:   "Élevée",
				EstimatedCost: "€€",
				Tags:          []string{"patrimoine", "tourisme", "cadre de vie"},
			},
		},
		{
			ID:          "3",
			Title:       "Festival de la Street Food",
			Description: "Organiser un grand marché gourmand nocturne avec des food trucks locaux, des producteurs régionaux et des animations musicales.",
			Author:      "Sophie L.",
			Date:        "2023-11-20",
			Votes:       215,
			Category:    types.CategoryCulture,
			AIAnalysis: &types.AIAnalysis{
				Impact:        "Dynamisation de la vie locale et soutien aux producteurs locaux.",
				Feasibility:   "Moyenne",
				EstimatedCost: "€€",
				Tags:          []string{"gastronomie", "convivialité", "événementiel"},
			},
		},
	}
}

// ForumTopics returns the initial forum threads, newest first.
func ForumTopics() []types.ForumTopic {
	return []types.ForumTopic{
		{
			ID:       "1",
			Title:    "Projet Gendarmerie : vos avis ?",
			Author:   "Jean-Michel T.",
			Date:     "Il y a 2 heures",
			Category: "Travaux",
			Views:    89,
			Replies: []types.ForumReply{
				{
					ID:      "r1",
					Author:  "Sarah L.",
					Content: "C'est nécessaire pour la sécurité, mais attention à l'intégration paysagère près du Chéran.",
					Date:    "Il y a 1 heure",
				},
			},
		},
		{
			ID:       "2",
			Title:    "Stationnement et travaux de parkings",
			Author:   "Commerçants Alby",
			Date:     "Il y a 1 jour",
			Category: "Infrastructure",
			Views:    230,
			Replies: []types.ForumReply{
				{
					ID:      "r3",
					Author:  "Mairie (Service Technique)",
					Content: "Une réunion publique de concertation est prévue le mois prochain pour discuter des nouvelles zones bleues.",
					Date:    "Il y a 5 heures",
				},
				{
					ID:      "r4",
					Author:  "Habitant du bourg",
					Content: "Il faudrait privilégier les parkings relais en entrée de ville.",
					Date:    "Il y a 2 heures",
				},
			},
		},
		{
			ID:       "3",
			Title:    "Consultation : Projet de la Combe",
			Author:   "Association Nature",
			Date:     "Il y a 3 jours",
			Category: "Environnement",
			Views:    412,
			Replies:  []types.ForumReply{},
		},
	}
}

// Events returns the municipal agenda entries.
func Events() []types.Event {
	return []types.Event{
		{
			ID:          1,
			Title:       "Conseil Municipal Public",
			Date:        "15 Décembre 2023",
			Location:    "Salle Plaimpalais",
			Description: "Présentation du projet d'aménagement de la Combe et vote du budget.",
		},
		{
			ID:          2,
			Title:       "Conseil Municipal des Jeunes",
			Date:        "20 Mai 2024",
			Location:    "Salle du Conseil",
			Description: "Installation des nouveaux élus du CMJ et présentation de leurs projets pour la commune.",
		},
	}
}
