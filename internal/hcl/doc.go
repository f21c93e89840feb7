// Package hcl implements config.Loader for node-kind manifests written in
// HCL. A manifest declares one or more `node` blocks:
//
//	node "log" {
//	  label   = "Log"
//	  emitter = "log"
//
//	  input "$pin_exec_in" { kind = "exec" }
//	  input "message" {
//	    type    = string
//	    default = ""
//	  }
//	  output "$pin_exec_out" { kind = "exec" }
//	}
//
// Pin types use HCL type expressions (string, number, bool, any, list(T),
// map(T), set(T)) and are translated to cty types.
package hcl
