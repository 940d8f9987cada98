/*
 * doc.go, part of pmx
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Top reads and writes Gromacs force-field topologies (not to be
confused with the pmx Topology structure). ReadTopology reads the first
molecule type of an itp or top file, WriteTopology writes it back with
the B-state columns of the perturbed terms. ReadForceField and ReadDefines
read the bonded types and the #define'd dihedral constants of a force
field. Files ending in .zst are compressed with zstd.

Only the [ atoms ], [ bonds ], [ angles ] and [ dihedrals ] of the first
molecule are modeled. The rest of the file is kept as it was read.
*/
package top
