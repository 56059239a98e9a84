package yaml_adapter

type fileRoot struct {
	Scopes      []scopeDoc      `yaml:"scopes"`
	Objects     []objectsDoc    `yaml:"objects"`
	Spreadables []spreadableDoc `yaml:"spreadables"`
	External    []string        `yaml:"external"`
}

type scopeDoc struct {
	Type      string        `yaml:"type"`
	Parent    *string       `yaml:"parent"`
	Extends   []string      `yaml:"extends"`
	Access    []accessDoc   `yaml:"access"`
	Children  []childDoc    `yaml:"children"`
	Producers []producerDoc `yaml:"producers"`
}

type objectsDoc struct {
	Type      string        `yaml:"type"`
	Extends   []string      `yaml:"extends"`
	Producers []producerDoc `yaml:"producers"`
}

type accessDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type childDoc struct {
	Name   string     `yaml:"name"`
	Scope  string     `yaml:"scope"`
	Params []paramDoc `yaml:"params"`
}

type paramDoc struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Expose bool   `yaml:"expose"`
}

type producerDoc struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	Requires  []string `yaml:"requires"`
	Cacheable *bool    `yaml:"cacheable"`
	Expose    bool     `yaml:"expose"`
	Spread    bool     `yaml:"spread"`
}

type spreadableDoc struct {
	Type      string        `yaml:"type"`
	Accessors []accessorDoc `yaml:"accessors"`
}

type accessorDoc struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Spread    bool   `yaml:"spread"`
	Cacheable *bool  `yaml:"cacheable"`
	Expose    *bool  `yaml:"expose"`
}
