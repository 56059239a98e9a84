package testutil

// GreetingHCL is a small valid declaration set: a root scope providing a
// String that a child reaches through an exposed producer.
const GreetingHCL = `
scope "Root" {
  child "child" {
    scope = "Child"
  }

  producer "greeting" {
    type   = "String"
    expose = true
  }
}

scope "Child" {
  access "greeting" {
    type = "String"
  }
}
`

// MissingHCL declares a scope whose access method has no producer.
const MissingHCL = `
scope "Root" {
  access "number" {
    type = "Integer"
  }
}
`
