package claim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wishly/internal/domain"
	"wishly/pkg/errcodes"
)

//nolint:gochecknoglobals
var (
	claimsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claims_total",
		Help: "Claim attempts by outcome.",
	}, []string{"outcome"})

	releasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claim_releases_total",
		Help: "Claim releases by outcome.",
	}, []string{"outcome"})
)

const (
	outcomeSuccess         = "success"
	outcomeAlreadyClaimed  = "already_claimed"
	outcomeRaceLost        = "race_lost"
	outcomeSelfClaim       = "self_claim"
	outcomeNotFound        = "not_found"
	outcomeUnauthenticated = "unauthenticated"
	outcomeInvalid         = "invalid"
	outcomeError           = "error"
)

// outcomeOf переводит результат операции в метку метрики.
func outcomeOf(err error) string {
	if err == nil {
		return outcomeSuccess
	}

	code, _ := domain.GetCode(err)

	switch code {
	case errcodes.AlreadyClaimed:
		return outcomeAlreadyClaimed
	case errcodes.AlreadyClaimedRace:
		return outcomeRaceLost
	case errcodes.SelfClaimDenied:
		return outcomeSelfClaim
	case errcodes.GiftNotFound, errcodes.ClaimNotFound:
		return outcomeNotFound
	case errcodes.Unauthenticated:
		return outcomeUnauthenticated
	case errcodes.ValidationError:
		return outcomeInvalid
	default:
		return outcomeError
	}
}
