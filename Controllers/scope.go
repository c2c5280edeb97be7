package Controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// resolveBranchFilter turns the caller's branch scope plus an optional
// requested branch into the branch id reports run under. 0 means all
// branches. Users tied to a branch are locked to it regardless of what they
// ask for; all-branch users may pass "all", a branch id, or nothing.
func resolveBranchFilter(c *gin.Context, requested string) (uint, error) {
	scope, exists := c.Get("branchID")
	if !exists {
		return 0, errors.New("branch scope not set")
	}

	userBranch := scope.(uint)
	if userBranch != 0 {
		return userBranch, nil
	}

	if requested == "" || requested == "all" {
		return 0, nil
	}

	id, err := strconv.ParseUint(requested, 10, 32)
	if err != nil {
		return 0, errors.New("branch_id must be a number or \"all\"")
	}
	return uint(id), nil
}

// branchScopeAllows reports whether a caller with the given scope may touch
// rows of the given branch. Scope 0 is the all-branch scope.
func branchScopeAllows(scope, branch uint) bool {
	return scope == 0 || scope == branch
}
