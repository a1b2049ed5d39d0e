package controllers

import (
	"homevisit-service/internal/app/services/core/roles"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type SuperadminController struct {
	Log         *zap.Logger
	RoleUsecase *roles.CasbinRoleUsecase
}

func NewSuperadminController(logger *zap.Logger, roleUsecase *roles.CasbinRoleUsecase) *SuperadminController {
	return &SuperadminController{
		Log:         logger,
		RoleUsecase: roleUsecase,
	}
}

// Overview is a placeholder dashboard. For now it only reports how many
// route permissions each role holds.
func (ctrl *SuperadminController) Overview(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	overview, err := ctrl.RoleUsecase.Overview(r.Context())
	if err != nil {
		ctrl.Log.Error("SuperadminController.Overview error reading policy",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrEnforcer(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuperadminOverviewSuccessMessage, map[string]interface{}{
		"roles": overview,
	})
}
