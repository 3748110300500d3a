package chaincfg

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// activationHeightNames maps the -testactivationheight name token to the
// Params field it overrides, per spec §6.4.
var activationHeightNames = map[string]func(p *Params, height int32){
	"segwit": func(p *Params, height int32) { p.SegwitHeight = height },
	"bip34":  func(p *Params, height int32) { p.BIP34Height = height },
	"dersig": func(p *Params, height int32) { p.BIP66Height = height },
	"cltv":   func(p *Params, height int32) { p.BIP65Height = height },
	"csv":    func(p *Params, height int32) { p.CSVHeight = height },
}

// ApplyTestActivationHeight parses one "-testactivationheight
// name@height" argument and applies it to p. Regtest-only; any other
// network rejects the call per §4.A's "no other network permits mutation".
func (p *Params) ApplyTestActivationHeight(arg string) error {
	if !p.mutable {
		return errors.Errorf("chaincfg: -testactivationheight is only permitted on regtest, got network %q", p.Name)
	}

	name, heightStr, ok := strings.Cut(arg, "@")
	if !ok {
		return errors.Errorf("chaincfg: invalid -testactivationheight value %q: expected name@height", arg)
	}

	set, ok := activationHeightNames[name]
	if !ok {
		return errors.Errorf("chaincfg: invalid -testactivationheight value %q: unknown name %q", arg, name)
	}

	height, err := strconv.ParseInt(heightStr, 10, 32)
	if err != nil {
		return errors.Wrapf(err, "chaincfg: invalid -testactivationheight value %q", arg)
	}

	set(p, int32(height))
	return nil
}

// UpdateVersionBitsParameters parses one "-vbparams
// dep:start:end[:minH]" argument and installs it into p.Deployments.
// Regtest-only.
func (p *Params) UpdateVersionBitsParameters(arg string) error {
	if !p.mutable {
		return errors.Errorf("chaincfg: -vbparams is only permitted on regtest, got network %q", p.Name)
	}

	parts := strings.Split(arg, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return errors.Errorf("chaincfg: invalid -vbparams value %q: expected dep:start:end[:minH]", arg)
	}

	dep, err := deploymentByName(parts[0])
	if err != nil {
		return errors.Wrapf(err, "chaincfg: invalid -vbparams value %q", arg)
	}

	start, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return errors.Wrapf(err, "chaincfg: invalid -vbparams start time in %q", arg)
	}
	end, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return errors.Wrapf(err, "chaincfg: invalid -vbparams end time in %q", arg)
	}

	var minHeight int64
	if len(parts) == 4 {
		minHeight, err = strconv.ParseInt(parts[3], 10, 32)
		if err != nil {
			return errors.Wrapf(err, "chaincfg: invalid -vbparams min activation height in %q", arg)
		}
	}

	d := p.Deployments[dep]
	d.StartTime = start
	d.ExpireTime = end
	d.MinActivationHeight = int32(minHeight)
	p.Deployments[dep] = d
	return nil
}

func deploymentByName(name string) (DeploymentID, error) {
	switch name {
	case "testdummy":
		return DeploymentTestDummy, nil
	case "csv":
		return DeploymentCSV, nil
	case "segwit":
		return DeploymentSegwit, nil
	case "taproot":
		return DeploymentTaproot, nil
	default:
		return 0, errors.Errorf("unknown deployment %q", name)
	}
}
