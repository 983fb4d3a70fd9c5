// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

// General API information for swag. Regenerate the docs package with:
//
//	swag init -g cmd/server/docs.go -o docs --parseInternal
//
// @title Cashpick API
// @version 1.0
// @description Cashback offer recommendations for chat assistants.
// @description
// @description New users get a weighted random draw biased toward the categories they
// @description chose. Once enough users have left feedback, recommendations come from
// @description an EASE item-item model fitted on the whole interaction log.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {"code": "NOT_FOUND", "message": "user not found: 7"},
// @description   "metadata": {"timestamp": "2026-05-01T12:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/cashpick/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3857
// @BasePath /
// @schemes http https
//
// @tag.name Recommendations
// @tag.description Ranked offer lists per user
//
// @tag.name Users
// @tag.description User profiles and dialogue bookkeeping
//
// @tag.name Items
// @tag.description Offer cards
//
// @tag.name Interactions
// @tag.description Like and dislike feedback
//
// @tag.name Health
// @tag.description Liveness and readiness probes
package main
