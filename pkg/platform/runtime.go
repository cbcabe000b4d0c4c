package platform

import (
	"context"
	"maps"
)

// Runtime deploys and invokes agent versions.
type Runtime struct{ c *Client }

// Invoke sends a payload to the agent behind sessionID and echoes it back.
func (r *Runtime) Invoke(ctx context.Context, sessionID string, payload map[string]string) (Response[Invocation], error) {
	if sessionID == "" {
		return Response[Invocation]{}, invalid("session id is required")
	}
	return invoke(ctx, r.c, "runtime.invoke", func() (Invocation, error) {
		return Invocation{
			SessionID: sessionID,
			Response:  "Agent invoked successfully",
			Output:    maps.Clone(payload),
		}, nil
	})
}

// Deploy starts agentVersionID in env.
func (r *Runtime) Deploy(ctx context.Context, agentVersionID string, env Environment) (Response[Deployment], error) {
	if agentVersionID == "" {
		return Response[Deployment]{}, invalid("agent version id is required")
	}
	switch env {
	case EnvSandbox, EnvStaging, EnvProduction:
	case "":
		env = EnvSandbox
	default:
		return Response[Deployment]{}, invalid("unknown environment %q", env)
	}

	return invoke(ctx, r.c, "runtime.deploy", func() (Deployment, error) {
		now := r.c.now()
		d := Deployment{
			ID:             r.c.newID("deploy"),
			AgentVersionID: agentVersionID,
			Status:         StatusRunning,
			Environment:    env,
			EndpointURL:    runtimeHost + agentVersionID,
			RuntimeARN:     runtimeARN + agentVersionID,
			CreatedAt:      now,
			DeployedAt:     &now,
		}
		r.c.mu.Lock()
		r.c.deploys[d.ID] = d
		r.c.mu.Unlock()
		return d, nil
	})
}

// Status reports a deployment created by Deploy.
func (r *Runtime) Status(ctx context.Context, deploymentID string) (Response[Deployment], error) {
	r.c.mu.RLock()
	d, ok := r.c.deploys[deploymentID]
	r.c.mu.RUnlock()
	if !ok {
		return Response[Deployment]{}, &NotFoundError{Kind: "deployment", ID: deploymentID}
	}
	return invoke(ctx, r.c, "runtime.status", func() (Deployment, error) {
		return d, nil
	})
}
