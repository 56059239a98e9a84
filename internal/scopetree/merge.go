package scopetree

import (
	"fmt"

	"github.com/specialistvlad/scopegraph/internal/ir"
)

type mergeResult struct {
	producers []*Producer
	missing   []ir.Type
	// done is false while the objects type is still being merged.
	done bool
}

// effective returns the producer set of a declaration: producers inherited
// from each base in Extends order, then the declaration's own. An own
// producer with the same signature as an inherited one replaces it in place.
// The same inherited declaration reached through two bases is kept once.
func (a *assembler) effective(owner ir.Type, extends []ir.Type, own []ir.Producer, path []string) ([]*Producer, []ir.Type, error) {
	var out []*Producer
	var missing []ir.Type
	origins := make(map[string]bool)

	for _, base := range extends {
		inherited, baseMissing, err := a.objectsProducers(base, append(path, owner.String()))
		if err != nil {
			return nil, nil, err
		}
		missing = append(missing, baseMissing...)
		for _, p := range inherited {
			if origins[p.Origin] {
				continue
			}
			origins[p.Origin] = true
			out = append(out, p)
		}
	}

	for _, decl := range own {
		p := &Producer{
			Origin:    owner.String() + "#" + decl.Signature(),
			Name:      decl.Name,
			Provides:  decl.Provides,
			Requires:  decl.Requires,
			Cacheable: decl.Cacheable,
			Exposed:   decl.Exposed,
			Spread:    decl.Spread,
		}
		sig := decl.Signature()
		replaced := false
		kept := out[:0]
		for _, q := range out {
			if signatureOf(q) != sig {
				kept = append(kept, q)
				continue
			}
			if !replaced {
				kept = append(kept, p)
				replaced = true
			}
		}
		out = kept
		if !replaced {
			out = append(out, p)
		}
	}
	return out, missing, nil
}

// objectsProducers returns fresh copies of the effective producers of an
// objects declaration.
func (a *assembler) objectsProducers(base ir.Type, path []string) ([]*Producer, []ir.Type, error) {
	key := base.String()
	decl, ok := a.objects[key]
	if !ok {
		return nil, []ir.Type{base}, nil
	}

	res, ok := a.merged[key]
	if ok && !res.done {
		return nil, nil, fmt.Errorf("%w: inheritance cycle through %s (via %v)", ir.ErrInvalidIR, key, path)
	}
	if !ok {
		res = &mergeResult{}
		a.merged[key] = res
		producers, missing, err := a.effective(decl.Type, decl.Extends, decl.Producers, path)
		if err != nil {
			return nil, nil, err
		}
		res.producers, res.missing, res.done = producers, missing, true
	}

	out := make([]*Producer, len(res.producers))
	for i, p := range res.producers {
		c := *p
		out[i] = &c
	}
	return out, res.missing, nil
}

func signatureOf(p *Producer) string {
	return ir.Producer{Name: p.Name, Requires: p.Requires}.Signature()
}
