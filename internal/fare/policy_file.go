package fare

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// LoadPolicyFile decodes a Policy from an HCL file such as:
//
//	base_fare      = 1250
//	base_distance  = 10
//	deduction      = 350
//	infant_max_age = 5
//	infants_free   = true
//
//	tier {
//	  from = 10
//	  to   = 50
//	  unit = 5
//	  rate = 100
//	}
//
//	bracket "teenager" {
//	  min_age          = 13
//	  max_age          = 18
//	  discount_percent = 20
//	}
func LoadPolicyFile(path string) (Policy, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Policy{}, fmt.Errorf("failed to parse fare policy %s: %w", path, diags)
	}

	var policy Policy
	diags = gohcl.DecodeBody(file.Body, nil, &policy)
	if diags.HasErrors() {
		return Policy{}, fmt.Errorf("failed to decode fare policy %s: %w", path, diags)
	}

	if err := policy.Validate(); err != nil {
		return Policy{}, fmt.Errorf("fare policy %s: %w", path, err)
	}
	return policy, nil
}
