// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/metrics"
	"github.com/meridianchain/meridian/xenv"
)

var metricNativeCalls = metrics.LazyLoadCounterVec("native_call_count", []string{"contract", "method", "status"})

type addressAndMethodName struct {
	meridian.Address
	name string
}

type nativeMethod struct {
	contractName string
	name         string
	run          func(env *xenv.Environment) (any, error)
}

var nativeMethods = make(map[addressAndMethodName]*nativeMethod)

func registerMethods(c *contract, defines []struct {
	name string
	run  func(env *xenv.Environment) (any, error)
}) {
	for _, def := range defines {
		key := addressAndMethodName{c.Address, def.name}
		if _, dup := nativeMethods[key]; dup {
			panic("duplicate native method " + c.Name + "." + def.name)
		}
		nativeMethods[key] = &nativeMethod{
			contractName: c.Name,
			name:         def.name,
			run:          def.run,
		}
	}
}

// FindNativeCall returns the handler of the named method on the contract at
// to, or nil when no such method exists.
func FindNativeCall(to meridian.Address, name string) *nativeMethod {
	return nativeMethods[addressAndMethodName{to, name}]
}

// Call runs the method in the given environment. The method's state changes
// are all-or-nothing: any error reverts every write the handler made.
func (m *nativeMethod) Call(env *xenv.Environment) (output any, err error) {
	err = env.Atomic(func() error {
		var inner error
		output, inner = m.run(env)
		return inner
	})

	status := "ok"
	if err != nil {
		output = nil
		status = "reverted"
	}
	metricNativeCalls().AddWithLabel(1, map[string]string{
		"contract": m.contractName,
		"method":   m.name,
		"status":   status,
	})
	return output, err
}
