package platform

import "context"

const maxScore = 5

// Observability exposes recorded agent trajectories and feedback.
type Observability struct{ c *Client }

// ListSessions returns observed sessions for agentID, or for the demo agent
// when agentID is empty.
func (o *Observability) ListSessions(ctx context.Context, agentID string) (Response[[]Observation], error) {
	if agentID == "" {
		agentID = seedAgentID
	}
	return invoke(ctx, o.c, "observability.list_sessions", func() ([]Observation, error) {
		obs := seedObservation(agentID, o.c.now())
		o.c.mu.RLock()
		if s, ok := o.c.scores[obs.ID]; ok {
			obs.Score = &s
		}
		o.c.mu.RUnlock()
		return []Observation{obs}, nil
	})
}

// Trajectory returns the step-by-step record of one session.
func (o *Observability) Trajectory(ctx context.Context, sessionID string) (Response[Observation], error) {
	if sessionID == "" {
		return Response[Observation]{}, invalid("session id is required")
	}
	return invoke(ctx, o.c, "observability.trajectory", func() (Observation, error) {
		return Observation{
			ID:        "obs-001",
			AgentID:   seedAgentID,
			SessionID: sessionID,
			Steps:     []ObservationStep{},
			Status:    StatusCompleted,
			CreatedAt: o.c.now(),
		}, nil
	})
}

// Score records feedback on an observation. Values range from 0 to 5.
func (o *Observability) Score(ctx context.Context, observationID string, value float64, feedback string) (Response[bool], error) {
	if observationID == "" {
		return Response[bool]{}, invalid("observation id is required")
	}
	if value < 0 || value > maxScore {
		return Response[bool]{}, invalid("score %.1f outside [0, %d]", value, maxScore)
	}
	return invoke(ctx, o.c, "observability.score", func() (bool, error) {
		o.c.mu.Lock()
		o.c.scores[observationID] = Score{Value: value, Feedback: feedback}
		o.c.mu.Unlock()
		return true, nil
	})
}
