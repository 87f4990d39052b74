package gateway

import (
	"fmt"

	"github.com/alby-numerique/participation/src/ai/core"
	"github.com/alby-numerique/participation/src/types"
)

// ChatSystemPrompt is the assistant persona. The assistant only answers on
// municipal matters and redirects to the front desk when unsure.
const ChatSystemPrompt = `Tu es "AlbyBot", l'assistant virtuel de la mairie d'Alby-sur-Chéran (74540).
Ton ton est chaleureux, poli et serviable. Tu parles toujours en Français.

Tes missions :
1. Aider les citoyens avec les démarches administratives et les votes.
2. Renseigner sur les projets en cours : Aménagement de la Combe, nouvelle Gendarmerie, Travaux de parkings.
3. Expliquer la nouvelle gouvernance : Comptes-rendus transparents, tirage au sort des citoyens, experts invités.

Informations contextuelles sur Alby-sur-Chéran :
- Village médiéval traversé par le Chéran.
- Mairie située Place du Trophée.
- Spécialité historique : la cordonnerie.

Si tu ne connais pas une réponse, invite à contacter l'accueil.`

// FallbackChatMessage is appended as the assistant's reply whenever the
// model call fails mid-conversation.
const FallbackChatMessage = "Désolé, je rencontre des difficultés techniques. Veuillez contacter la mairie par téléphone."

func analysisPrompt(title, description string) string {
	return fmt.Sprintf(`Tu es un expert en gestion municipale pour la commune d'Alby-sur-Chéran (Haute-Savoie, village médiéval).
Analyse la proposition citoyenne suivante.
Titre: %s
Description: %s

Retourne une analyse JSON stricte.`, title, description)
}

func moderationPrompt(text string) string {
	return fmt.Sprintf(`Tu es un modérateur pour le forum municipal d'Alby-sur-Chéran.
Analyse le message suivant. Est-il respectueux et approprié pour un forum public ?
Rejette les insultes, la haine, le spam évident ou les propos illégaux.

Message: "%s"

Réponds en JSON uniquement.`, text)
}

func analysisSchema() *core.Schema {
	return &core.Schema{
		Type: "OBJECT",
		Properties: map[string]*core.Schema{
			"impact":        {Type: "STRING", Description: "Court résumé de l'impact social et environnemental (max 20 mots)."},
			"feasibility":   {Type: "STRING", Description: "Niveau de faisabilité (Faible, Moyenne, Élevée, Très Élevée)."},
			"estimatedCost": {Type: "STRING", Description: "Estimation symbolique du coût (€, €€, €€€, €€€€)."},
			"tags":          {Type: "ARRAY", Items: &core.Schema{Type: "STRING"}, Description: "3 mots-clés pertinents."},
			"category":      {Type: "STRING", Enum: types.Categories, Description: "La catégorie la plus appropriée."},
		},
		Required: []string{"impact", "feasibility", "estimatedCost", "tags", "category"},
	}
}

func moderationSchema() *core.Schema {
	return &core.Schema{
		Type: "OBJECT",
		Properties: map[string]*core.Schema{
			"safe":   {Type: "BOOLEAN", Description: "True si le message est publiable, False sinon."},
			"reason": {Type: "STRING", Description: "Si refusé, explique pourquoi en 5 mots max (ex: 'Propos insultants'). Sinon vide."},
		},
		Required: []string{"safe"},
	}
}
