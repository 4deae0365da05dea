// Handler wiring.
//
// Handlers groups the HTTP endpoints for codes, the winners ledger, the
// gift catalog, and user summaries. It depends on abstract service
// interfaces to keep transport concerns separate from business logic.
package handlers

// Handlers groups HTTP endpoints for all campaign resources.
type Handlers struct {
	classSvc  ClassificationService
	codeSvc   CodeService
	winnerSvc WinnerService
	giftSvc   GiftService
	userSvc   UserService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(classSvc ClassificationService, codeSvc CodeService, winnerSvc WinnerService, giftSvc GiftService, userSvc UserService) *Handlers {
	return &Handlers{
		classSvc:  classSvc,
		codeSvc:   codeSvc,
		winnerSvc: winnerSvc,
		giftSvc:   giftSvc,
		userSvc:   userSvc,
	}
}
